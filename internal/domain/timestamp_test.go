package domain

import "testing"

func TestNormalizeTimestamp(t *testing.T) {
	cases := map[string]string{
		"2022:06:29 14:30:00-04:00":  "2022:06:29 14:30:00",
		"2022:06:29 14:30:00+09:00":  "2022:06:29 14:30:00",
		"2022:06:29 14:30:00":        "2022:06:29 14:30:00",
		" 2022:06:29 14:30:00\x00":   "2022:06:29 14:30:00",
		"2022:06:29 14:30:00 -04:00": "2022:06:29 14:30:00",
		"2022:06":                    "2022:06",
		"":                           "",
	}
	for in, want := range cases {
		if got := NormalizeTimestamp(in); got != want {
			t.Fatalf("NormalizeTimestamp(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCaptureTimestampDropsOffset(t *testing.T) {
	for _, raw := range []string{"2022:06:29 14:30:00-04:00", "2022:06:29 14:30:00+09:00"} {
		ts, err := ParseCaptureTimestamp(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		want := CaptureTimestamp{Year: 2022, Month: 6, Day: 29, Hour: 14, Minute: 30}
		if ts != want {
			t.Fatalf("parse %q = %+v, want %+v", raw, ts, want)
		}
		if ts.String() != "2022:06:29 14:30:00" {
			t.Fatalf("unexpected string %q", ts.String())
		}
	}
}

func TestParseCaptureTimestampRejectsOtherGrammars(t *testing.T) {
	for _, raw := range []string{
		"",
		"2022-06-29 14:30:00",
		"2022:06:29T14:30:00",
		"2022:13:01 00:00:00",
		"2022:06:29 14:30",
		"0000:00:00 00:00:00",
		"June 29 2022",
		"2022:06:29 4:30:00",
		"2022:6:29 14:30:00",
		"2022:06:29 14:30:00.123",
	} {
		if _, err := ParseCaptureTimestamp(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
