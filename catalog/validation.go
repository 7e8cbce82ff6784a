package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the only accepted calendar date format
const DateLayout = "2006-01-02"

const minPublicationYear = 1000

var (
	authorNamePattern = regexp.MustCompile(`^[\p{L} .]+$`)
	letterPattern     = regexp.MustCompile(`\p{L}`)
	isbnPattern       = regexp.MustCompile(`^(\d{10}|\d{13})$`)
	digitsPattern     = regexp.MustCompile(`^\d+$`)
)

/* Validators are pure: no I/O, no clock. They return the normalized value
 * or a *Rejection, and callers decide how to report it.
 */

// ValidateAuthorName trims raw and checks it is a non-empty name
func ValidateAuthorName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if err := validation.Validate(name, validation.Required); err != nil {
		return "", reject("name", ErrEmptyName)
	}
	if err := validation.Validate(name,
		validation.Match(authorNamePattern),
		validation.Match(letterPattern),
	); err != nil {
		return "", reject("name", ErrInvalidCharacters)
	}
	return name, nil
}

// ValidateDate parses an optional YYYY-MM-DD date. Blank input yields nil.
func ValidateDate(raw, field string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if err := validation.Validate(value, validation.Date(DateLayout)); err != nil {
		return nil, reject(field, ErrBadDateFormat)
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, reject(field, ErrBadDateFormat)
	}
	return &d, nil
}

// ValidateAuthorDates checks that death, when both are known, comes after birth
func ValidateAuthorDates(birth, death *time.Time) error {
	if birth == nil || death == nil {
		return nil
	}
	if !death.After(*birth) {
		return reject("date_of_death", ErrDeathBeforeBirth)
	}
	return nil
}

// ValidateISBN accepts exactly 10 or 13 digits after trimming
func ValidateISBN(raw string) (string, error) {
	isbn := strings.TrimSpace(raw)
	if err := validation.Validate(isbn, validation.Required, validation.Match(isbnPattern)); err != nil {
		return "", reject("isbn", ErrInvalidISBN)
	}
	return isbn, nil
}

// ValidateTitle trims raw and requires at least one letter
func ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if err := validation.Validate(title, validation.Required, validation.Match(letterPattern)); err != nil {
		return "", reject("title", ErrInvalidTitle)
	}
	return title, nil
}

// ValidatePublicationYear parses an optional year within [1000, currentYear]
func ValidatePublicationYear(raw string, currentYear int) (*int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if err := validation.Validate(value, validation.Match(digitsPattern)); err != nil {
		return nil, reject("publication_year", ErrInvalidYear)
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return nil, reject("publication_year", ErrInvalidYear)
	}
	// Required guards year 0, which ozzo threshold rules treat as empty.
	if err := validation.Validate(year,
		validation.Required,
		validation.Min(minPublicationYear),
		validation.Max(currentYear),
	); err != nil {
		return nil, reject("publication_year", ErrInvalidYear)
	}
	return &year, nil
}
