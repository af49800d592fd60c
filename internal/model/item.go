package model

import "fmt"

// Item is the domain model for a shopping-list entry.
// Name is the natural key: two adds with the same name are one record.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Bought   bool   `json:"bought"`
	ImageURL string `json:"imageUrl"`
}

// Label is the row text shown by every display surface.
func (it Item) Label() string {
	return fmt.Sprintf("%s (%d)", it.Name, it.Quantity)
}

func (it Item) HasImage() bool { return it.ImageURL != "" }

// DefaultItems returns fresh copies of the first-run entries.
func DefaultItems() []Item {
	return []Item{
		{Name: "Maçã", Quantity: 3, ImageURL: "../imagens/maca.jpeg"},
		{Name: "Pão", Quantity: 2, ImageURL: "https://panattos.com.br/uploads/produtos/2017/07/pao-frances-fermentacao-super-longa-massa-congelada.jpg"},
		{Name: "Leite", Quantity: 1, ImageURL: "../imagens/leite.jpeg"},
	}
}
