package discovery

import "strings"

// categorySlugs maps legacy URL slugs to the canonical category names stored on listings.
var categorySlugs = map[string]string{
	"auto-moto":       "Auto moto",
	"auto":            "Auto moto",
	"piese-auto":      "Piese auto",
	"imobiliare":      "Imobiliare",
	"electronice":     "Electronice si electrocasnice",
	"electrocasnice":  "Electronice si electrocasnice",
	"telefoane":       "Telefoane",
	"moda":            "Moda si frumusete",
	"casa-gradina":    "Casa si gradina",
	"mama-copilul":    "Mama si copilul",
	"sport":           "Sport, timp liber, arta",
	"animale":         "Animale de companie",
	"agro":            "Agro si industrie",
	"locuri-de-munca": "Locuri de munca",
	"servicii":        "Servicii",
	"cazare-turism":   "Cazare turism",
	"matrimoniale":    "Matrimoniale",
	"diverse":         "Diverse",
}

// CanonicalCategory resolves a slug to its canonical name; unknown values pass through.
func CanonicalCategory(value string) string {
	v := strings.TrimSpace(value)
	if canonical, ok := categorySlugs[strings.ToLower(v)]; ok {
		return canonical
	}
	return v
}
