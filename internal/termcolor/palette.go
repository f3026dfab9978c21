package termcolor

// Role styles for search output. Path and function mirror the classic
// grep-tool look: bold blue file names, bold yellow function names.

func PathStyle() Style {
	color := 4
	return Style{Bold: true, FGBasic: &color}
}

func FuncStyle() Style {
	color := 3
	return Style{Bold: true, FGBasic: &color}
}

func LineNoStyle() Style {
	color := 2
	return Style{FGBasic: &color}
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

func SignatureStyle() Style {
	return Style{Bold: true}
}

// MatchStyle is the highlight for the matched substring. Richer
// profiles get an orange that keeps contrast on light backgrounds;
// basic terminals fall back to red.
func MatchStyle(profile Profile, scheme Scheme) Style {
	switch profile {
	case ProfileTrueColor:
		rgb := [3]uint8{255, 135, 0}
		if scheme == SchemeLight {
			rgb = [3]uint8{200, 70, 0}
		}
		return Style{Bold: true, FGTrue: &rgb}
	case ProfileANSI256:
		idx := 208
		if scheme == SchemeLight {
			idx = 166
		}
		return Style{Bold: true, FG256: &idx}
	default:
		color := 1
		return Style{Bold: true, FGBasic: &color}
	}
}
