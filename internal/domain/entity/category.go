package entity

import "time"

// DefaultCategories é o conjunto contábil inicial de cada escritório.
// Categorias ad-hoc são adicionadas na confirmação da nota, sem erro.
var DefaultCategories = []string{
	"Alimentação",
	"Combustível",
	"Material de Escritório",
	"Serviços",
	"Outros",
	"Hospedagem",
	"Transporte",
	"Manutenção",
	"Impostos",
	"Marketing",
}

// Category é uma categoria contábil do escritório (firm).
type Category struct {
	ID        string
	FirmID    string // escritório contábil dono do conjunto
	Name      string
	AdHoc     bool // criada na confirmação, fora do conjunto padrão
	CreatedAt time.Time
}
