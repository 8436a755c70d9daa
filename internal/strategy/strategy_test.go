package strategy

import (
	"errors"
	"testing"

	"github.com/lox/letitride/internal/deck"
)

func TestBasicRideFirst(t *testing.T) {
	tests := []struct {
		name string
		hole string
		want bool
	}{
		{"pair of aces", "AsAh4d", true},
		{"pair of tens", "TsTh4d", true},
		{"pair of nines", "9s9h4d", false},
		{"three of a kind", "7s7h7d", true},
		{"three to a royal", "TsJsQs", true},
		{"three to a royal with gaps", "TsQsAs", true},
		{"suited consecutive", "3h4h5h", true},
		{"suited consecutive high", "9hThJh", true},
		{"two three four suited excluded", "2h3h4h", false},
		{"ace low suited excluded", "Ah2h3h", false},
		{"unsuited consecutive", "3s4h5d", false},
		{"spread four with high card", "8s9sJs", true},
		{"spread four without high card", "6s7s9s", false},
		{"spread five with two high cards", "9sJsKs", true},
		{"spread five with one high card", "6s8sTs", false},
		{"spread too wide", "5s9sKs", false},
		{"high cards unsuited", "AsKhQd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Basic{}.RideFirst(deck.MustParseCards(tt.hole))
			if got != tt.want {
				t.Errorf("RideFirst(%s) = %v, want %v", tt.hole, got, tt.want)
			}
		})
	}
}

func TestBasicRideSecond(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  bool
	}{
		{"pair of aces", "AsAh4d2c", true},
		{"pair of tens", "TsTh4d2c", true},
		{"pair of fives", "5s5h9dKc", false},
		{"two pair", "KsKh4d4c", true},
		{"low two pair", "5s5h4d4c", true},
		{"three of a kind", "7s7h7d2c", true},
		{"four to a flush", "Kh9h5h2h", true},
		{"open ended straight", "5s6h7d8c", true},
		{"broadway one ender", "JsQhKdAc", true},
		{"inside draw all high", "TsJhQdAc", true},
		{"inside draw three high", "9sJhQdKc", false},
		{"ace low one ender", "Ah2s3d4c", false},
		{"inside straight", "5s6h7d9c", false},
		{"nothing", "2s5hTdKc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Basic{}.RideSecond(deck.MustParseCards(tt.cards))
			if got != tt.want {
				t.Errorf("RideSecond(%s) = %v, want %v", tt.cards, got, tt.want)
			}
		})
	}
}

func TestAlwaysAndNeverRide(t *testing.T) {
	hole := deck.MustParseCards("2s7h9d")
	four := deck.MustParseCards("2s7h9dKc")

	if !(AlwaysRide{}).RideFirst(hole) || !(AlwaysRide{}).RideSecond(four) {
		t.Error("always-ride should ride everything")
	}
	if (NeverRide{}).RideFirst(hole) || (NeverRide{}).RideSecond(four) {
		t.Error("never-ride should pull everything")
	}
}

func TestNewLooksUpRegistry(t *testing.T) {
	for _, name := range []string{"basic", "always-ride", "never-ride"} {
		s, err := New(name)
		if err != nil {
			t.Errorf("New(%q) error: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New("martingale")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("New(unknown) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewUnimplementedStrategyIsDistinct(t *testing.T) {
	_, err := New("composition")
	if errors.Is(err, ErrUnknownStrategy) {
		t.Fatal("composition is declared, should not report unknown")
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Fatalf("New(composition) error = %v, want ErrUnsupported", err)
	}
}

func TestAvailableListsOnlyImplemented(t *testing.T) {
	names := Available()
	want := []string{"always-ride", "basic", "never-ride"}
	if len(names) != len(want) {
		t.Fatalf("Available() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Available() = %v, want %v", names, want)
		}
	}
}
