package models

// Style is a set of colour attributes used to render an airport row
type Style struct {
	BackgroundColor string `json:"backgroundColor"`
	Color           string `json:"color"`
	BorderLeftColor string `json:"borderLeftColor"`
	BorderColor     string `json:"borderColor"`
}

var (
	verifiedStyle = Style{
		BackgroundColor: "#d4edda",
		Color:           "#155724",
		BorderLeftColor: "#28a745",
		BorderColor:     "#c3e6cb",
	}
	unverifiedStyle = Style{
		BackgroundColor: "#fff3cd",
		Color:           "#856404",
		BorderLeftColor: "#ffc107",
		BorderColor:     "#ffeaa7",
	}
	invalidStyle = Style{
		BackgroundColor: "#f8d7da",
		Color:           "#721c24",
		BorderLeftColor: "#dc3545",
		BorderColor:     "#f5c6cb",
	}
)

// StyleFor maps a validity state to its display style.
// Values outside the defined states get the invalid style.
func StyleFor(v Validity) Style {
	switch v {
	case ValidityVerified:
		return verifiedStyle
	case ValidityUnverified:
		return unverifiedStyle
	case ValidityInvalid:
		return invalidStyle
	default:
		return invalidStyle
	}
}
