package sexagesimal

import "testing"

func TestFormatHMS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		deg  float64
		want string
	}{
		{0, "000000.000"},
		{247.5, "163000.000"},
		{180, "120000.000"},
		{359.9999, "235959.976"},
		{-90, "180000.000"},
		{360, "000000.000"},
		{720.25, "000100.000"},
	}
	for _, tc := range cases {
		if got := FormatHMS(tc.deg); got != tc.want {
			t.Errorf("FormatHMS(%v) = %q, want %q", tc.deg, got, tc.want)
		}
	}
}

func TestFormatDMS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		deg  float64
		want string
	}{
		{0, "+000000.00"},
		{-33.2, "-331200.00"},
		{2.0525, "+020309.00"},
		{-0.5, "-003000.00"},
		{89.99999, "+895959.96"},
	}
	for _, tc := range cases {
		if got := FormatDMS(tc.deg); got != tc.want {
			t.Errorf("FormatDMS(%v) = %q, want %q", tc.deg, got, tc.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"000000.000", "163028.123", "235959.999", "010203.040"} {
		deg, err := ParseHMS(s)
		if err != nil {
			t.Fatalf("ParseHMS(%q) error = %v", s, err)
		}
		if got := FormatHMS(deg); got != s {
			t.Errorf("FormatHMS(ParseHMS(%q)) = %q", s, got)
		}
	}
	for _, s := range []string{"+000000.00", "-331200.00", "+895959.99", "-000000.01"} {
		deg, err := ParseDMS(s)
		if err != nil {
			t.Fatalf("ParseDMS(%q) error = %v", s, err)
		}
		if got := FormatDMS(deg); got != s {
			t.Errorf("FormatDMS(ParseDMS(%q)) = %q", s, got)
		}
	}
}

func TestRoundMatchesParse(t *testing.T) {
	t.Parallel()

	// The normalized value and the parsed-back value must be bit-identical,
	// or queries would not survive a filename round trip.
	for _, deg := range []float64{0, 0.123456789, 187.2792, 359.9999999, -12.000001} {
		ra, err := ParseHMS(FormatHMS(deg))
		if err != nil {
			t.Fatalf("ParseHMS error = %v", err)
		}
		if ra != RoundHMS(deg) {
			t.Errorf("RoundHMS(%v) = %v, parsed = %v", deg, RoundHMS(deg), ra)
		}
		dec, err := ParseDMS(FormatDMS(deg))
		if err != nil {
			t.Fatalf("ParseDMS error = %v", err)
		}
		if dec != RoundDMS(deg) {
			t.Errorf("RoundDMS(%v) = %v, parsed = %v", deg, RoundDMS(deg), dec)
		}
	}
}

func TestParseHMSRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"", "163028", "163028.1234", "256028.000", "166028.000",
		"126068.000", "xx3028.000", "1630281000", "16302(.000",
	} {
		if _, err := ParseHMS(s); err == nil {
			t.Errorf("ParseHMS(%q) error = nil, want error", s)
		}
	}
}

func TestParseDMSRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"", "331200.00", "331200.000", "+336200.00", "+331260.00",
		"+33120a.00", "*331200.00", "+3312000.0",
	} {
		if _, err := ParseDMS(s); err == nil {
			t.Errorf("ParseDMS(%q) error = nil, want error", s)
		}
	}
}
