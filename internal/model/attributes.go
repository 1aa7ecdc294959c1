package model

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/udisondev/cubesim/internal/kinematics"
)

// Допустимый диапазон атрибутов юнита.
const (
	MinAttribute int32 = 1
	MaxAttribute int32 = 200
)

var (
	ErrInvalidAttribute = errors.New("attribute out of range")
	ErrInvalidName      = errors.New("invalid unit name")
)

// Attributes описывает физические характеристики юнита.
// Value type, передаётся по значению.
type Attributes struct {
	Strength  int32
	Agility   int32
	Weight    int32
	Toughness int32
}

// Validate проверяет, что каждый атрибут лежит в [MinAttribute, MaxAttribute].
func (a Attributes) Validate() error {
	for _, f := range []struct {
		name  string
		value int32
	}{
		{"strength", a.Strength},
		{"agility", a.Agility},
		{"weight", a.Weight},
		{"toughness", a.Toughness},
	} {
		if f.value < MinAttribute || f.value > MaxAttribute {
			return fmt.Errorf("%s=%d: %w", f.name, f.value, ErrInvalidAttribute)
		}
	}
	return nil
}

// Body возвращает атрибуты в виде, который используют формулы kinematics.
func (a Attributes) Body() kinematics.Body {
	return kinematics.Body{
		Strength:  a.Strength,
		Agility:   a.Agility,
		Weight:    a.Weight,
		Toughness: a.Toughness,
	}
}

// ValidateName checks a unit name: at least two characters, starting with an
// uppercase letter, made of letters, spaces and quotes.
func ValidateName(name string) error {
	runes := []rune(name)
	if len(runes) < 2 {
		return fmt.Errorf("%q: too short: %w", name, ErrInvalidName)
	}
	if !unicode.IsUpper(runes[0]) {
		return fmt.Errorf("%q: must start with an uppercase letter: %w", name, ErrInvalidName)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '"' {
			return fmt.Errorf("%q: unexpected %q: %w", name, r, ErrInvalidName)
		}
	}
	return nil
}
