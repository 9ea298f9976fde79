package card

import "testing"

func TestNewBuildsCanonicalID(t *testing.T) {
	tests := []struct {
		card Card
		id   string
		str  string
	}{
		{New(Spades, Eight), "8-spades", "8♠"},
		{New(Hearts, Queen), "q-hearts", "Q♥"},
		{New(Diamonds, Ten), "10-diamonds", "10♦"},
		{New(Clubs, Ace), "a-clubs", "A♣"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.card.ID != tt.id {
				t.Errorf("ID = %q, want %q", tt.card.ID, tt.id)
			}
			if got := tt.card.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestIsWild(t *testing.T) {
	for _, s := range Suits {
		for _, r := range Ranks {
			c := New(s, r)
			if got, want := c.IsWild(), r == Eight; got != want {
				t.Errorf("%s IsWild() = %v, want %v", c.ID, got, want)
			}
		}
	}
}

func TestParseSuit(t *testing.T) {
	tests := []struct {
		in      string
		want    Suit
		wantErr bool
	}{
		{"spades", Spades, false},
		{"Spade", Spades, false},
		{"S", Spades, false},
		{"♥", Hearts, false},
		{" clubs ", Clubs, false},
		{"d", Diamonds, false},
		{"stars", NoSuit, true},
		{"", NoSuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSuit(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSuit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSuit(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8-spades", "8-spades", false},
		{"Q-Hearts", "q-hearts", false},
		{"qh", "q-hearts", false},
		{"10s", "10-spades", false},
		{"8♣", "8-clubs", false},
		{"1d", "a-diamonds", false},
		{"k", "", true},
		{"11h", "", true},
		{"7x", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got.ID != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got.ID, tt.want)
			}
		})
	}
}
