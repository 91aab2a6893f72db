package qtf2html

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil uses defaults", nil, nil},
		{"defaults", DefaultPageSettings(), nil},
		{"a4 landscape", &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 1}, nil},
		{"legal min margin", &PageSettings{Size: "legal", Orientation: "portrait", Margin: MinMargin}, nil},
		{"unknown size", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"empty size", &PageSettings{Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"bad orientation", &PageSettings{Size: "a4", Orientation: "diagonal", Margin: 1}, ErrInvalidOrientation},
		{"margin too small", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, ErrInvalidMargin},
		{"margin too large", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		page          *PageSettings
		width, height float64
	}{
		{"nil is letter portrait", nil, 8.5, 11},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait"}, 8.27, 11.69},
		{"legal landscape", &PageSettings{Size: "legal", Orientation: "landscape"}, 14, 8.5},
		{"unknown falls back", &PageSettings{Size: "??"}, 8.5, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := tt.page.dimensions()
			if w != tt.width || h != tt.height {
				t.Errorf("dimensions() = %v x %v, want %v x %v", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestWithTimeoutPanic(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}
