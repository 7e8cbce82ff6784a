package catalog

import "time"

/* Plain data records, no persistence behavior.
 * Value semantics: they represent data, not an API.
 */

// Author is a writer registered in the catalog
type Author struct {
	ID          int64
	Name        string
	BirthDate   *time.Time
	DateOfDeath *time.Time
}

// AuthorForm is the raw key-value input for registering an author
type AuthorForm struct {
	Name        string
	BirthDate   string
	DateOfDeath string
}
