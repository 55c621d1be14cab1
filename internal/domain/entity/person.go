package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/financas-casa/internal/domain"
)

// Person identifica a uno de los dos integrantes del hogar.
type Person string

const (
	PersonYuri   Person = "Yuri"
	PersonMarcos Person = "Marcos"
)

// Persons es el conjunto cerrado de personas, en el orden en que se muestran los totales.
var Persons = []Person{PersonYuri, PersonMarcos}

// Valid indica si la persona pertenece al hogar.
func (p Person) Valid() bool {
	for _, known := range Persons {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePerson acepta el nombre sin distinguir mayúsculas.
func ParsePerson(s string) (Person, error) {
	s = strings.TrimSpace(s)
	for _, known := range Persons {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: persona %q desconocida", domain.ErrValidation, s)
}

// PersonPtr devuelve un puntero a p (campo opcional de Movement).
func PersonPtr(p Person) *Person { return &p }
