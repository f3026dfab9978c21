package pathutil

import "testing"

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		path string
		home string
		want string
	}{
		{"under home", "/home/dev/src/app/index.php", "/home/dev", "~/src/app/index.php"},
		{"home itself", "/home/dev", "/home/dev", "~"},
		{"outside home", "/srv/www/index.php", "/home/dev", "/srv/www/index.php"},
		{"sibling of home", "/home/devops/x.php", "/home/dev", "/home/devops/x.php"},
		{"dot slash stripped", "./app/index.php", "/home/dev", "app/index.php"},
		{"no home known", "./x.php", "", "x.php"},
		{"relative untouched", "app/index.php", "/home/dev", "app/index.php"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Display(tc.path, tc.home); got != tc.want {
				t.Errorf("Display(%q, %q) = %q, want %q", tc.path, tc.home, got, tc.want)
			}
		})
	}
}
