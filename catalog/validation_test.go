package catalog_test

import (
	"testing"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{in: "Jane Austen", want: "Jane Austen"},
		{in: "  J. Tolkien  ", want: "J. Tolkien"},
		{in: "Gabriel García Márquez", want: "Gabriel García Márquez"},
		{in: "", err: catalog.ErrEmptyName},
		{in: "   ", err: catalog.ErrEmptyName},
		{in: "R2D2", err: catalog.ErrInvalidCharacters},
		{in: "Anne-Marie", err: catalog.ErrInvalidCharacters},
		{in: "...", err: catalog.ErrInvalidCharacters},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ValidateAuthorName(tt.in)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.True(t, catalog.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDate(t *testing.T) {
	t.Run("blank is absent", func(t *testing.T) {
		d, err := catalog.ValidateDate("  ", "birth_date")
		require.NoError(t, err)
		assert.Nil(t, d)
	})
	t.Run("valid", func(t *testing.T) {
		d, err := catalog.ValidateDate("1892-01-03", "birth_date")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(1892, 1, 3, 0, 0, 0, 0, time.UTC), *d)
	})
	for _, raw := range []string{"03/01/1892", "1892-1-3", "1892-02-30", "yesterday"} {
		t.Run(raw, func(t *testing.T) {
			_, err := catalog.ValidateDate(raw, "birth_date")
			require.ErrorIs(t, err, catalog.ErrBadDateFormat)
			var r *catalog.Rejection
			require.ErrorAs(t, err, &r)
			assert.Equal(t, "birth_date", r.Field)
		})
	}
}

func TestValidateAuthorDates(t *testing.T) {
	day := func(s string) *time.Time {
		d, err := time.Parse(catalog.DateLayout, s)
		require.NoError(t, err)
		return &d
	}
	assert.NoError(t, catalog.ValidateAuthorDates(nil, nil))
	assert.NoError(t, catalog.ValidateAuthorDates(day("1900-01-01"), nil))
	assert.NoError(t, catalog.ValidateAuthorDates(nil, day("1900-01-01")))
	assert.NoError(t, catalog.ValidateAuthorDates(day("1900-01-01"), day("1900-01-02")))
	assert.ErrorIs(t, catalog.ValidateAuthorDates(day("1900-01-01"), day("1900-01-01")), catalog.ErrDeathBeforeBirth)
	assert.ErrorIs(t, catalog.ValidateAuthorDates(day("1900-01-02"), day("1900-01-01")), catalog.ErrDeathBeforeBirth)
}

func TestValidateISBN(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "1234567890", want: "1234567890", ok: true},
		{in: " 9780547928227 ", want: "9780547928227", ok: true},
		{in: ""},
		{in: "123456789"},
		{in: "12345678901"},
		{in: "123456789X"},
		{in: "978-0547928227"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ValidateISBN(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, catalog.ErrInvalidISBN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTitle(t *testing.T) {
	got, err := catalog.ValidateTitle("  1984 Revisited ")
	require.NoError(t, err)
	assert.Equal(t, "1984 Revisited", got)

	for _, raw := range []string{"", "   ", "1984", "!!!"} {
		_, err := catalog.ValidateTitle(raw)
		assert.ErrorIs(t, err, catalog.ErrInvalidTitle, raw)
	}
}

func TestValidatePublicationYear(t *testing.T) {
	const current = 2026
	tests := []struct {
		in   string
		want *int
		ok   bool
	}{
		{in: "", ok: true},
		{in: "1000", want: intPtr(1000), ok: true},
		{in: " 1937 ", want: intPtr(1937), ok: true},
		{in: "2026", want: intPtr(2026), ok: true},
		{in: "999"},
		{in: "0"},
		{in: "2027"},
		{in: "-1937"},
		{in: "19x7"},
		{in: "1937.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ValidatePublicationYear(tt.in, current)
			if !tt.ok {
				assert.ErrorIs(t, err, catalog.ErrInvalidYear)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSortOrder(t *testing.T) {
	assert.Equal(t, catalog.ByTitle, catalog.NewSortOrder("title"))
	assert.Equal(t, catalog.ByAuthorName, catalog.NewSortOrder("author"))
	assert.Equal(t, catalog.ByAuthorName, catalog.NewSortOrder(""))
	assert.Equal(t, catalog.ByAuthorName, catalog.NewSortOrder("year"))
}

func intPtr(i int) *int { return &i }
