package services

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
)

type Operator struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	LogoData string `json:"logoData"`
}

const (
	logosDir = "./static/operator-logos"
	demoSVG  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#f0f0f0"/><rect x="70" y="40" width="60" height="120" rx="10" fill="#999"/><rect x="78" y="55" width="44" height="80" fill="#f0f0f0"/><text x="100" y="180" text-anchor="middle" font-family="Arial" font-size="14" fill="#666">MOBILE</text></svg>`
)

var operatorLogos = map[string]string{
	"djezzy":  "djezzy.svg",
	"mobilis": "mobilis.svg",
	"ooredoo": "ooredoo.svg",
}

var algerianOperators = []Operator{
	{Code: "djezzy", Name: "Djezzy"},
	{Code: "mobilis", Name: "Mobilis"},
	{Code: "ooredoo", Name: "Ooredoo"},
}

type OperatorService struct{}

func NewOperatorService() *OperatorService {
	return &OperatorService{}
}

// GetAllOperators lists the recharge operators
// @Summary List operators
// @Description List the mobile operators available for recharge
// @Tags operators
// @Produce json
// @Success 200 {array} Operator
// @Router /operators [get]
func (ops *OperatorService) GetAllOperators(w http.ResponseWriter, r *http.Request) {
	operators := make([]Operator, len(algerianOperators))
	copy(operators, algerianOperators)

	for i := range operators {
		operators[i].LogoData = ops.LoadLogo(operators[i].Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	json.NewEncoder(w).Encode(operators)
}

func (ops *OperatorService) LoadLogo(code string) string {
	filename, ok := operatorLogos[code]
	if !ok {
		return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(demoSVG))
	}

	path := filepath.Join(logosDir, filename)
	if data, err := os.ReadFile(path); err == nil {
		return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data)
	}

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(demoSVG))
}
