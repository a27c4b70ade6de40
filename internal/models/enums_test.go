package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDutyType(t *testing.T) {
	cases := []struct {
		in   string
		want DutyType
	}{
		{"ПДН", DutyPDN},
		{"ппсп", DutyPPSP},
		{"  УУП  ", DutyUUP},
		{"uup", DutyUUP},
		{"pdn", DutyPDN},
	}

	for _, c := range cases {
		got, err := ParseDutyType(c.in)
		if err != nil {
			t.Errorf("ParseDutyType(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDutyType(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDutyType_Invalid(t *testing.T) {
	_, err := ParseDutyType("ГИБДД")
	if err == nil {
		t.Fatal("expected error for unknown duty type")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("Октябрь")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	if m != October {
		t.Errorf("expected October, got %v", m)
	}
	if m.Number() != 10 {
		t.Errorf("expected month number 10, got %d", m.Number())
	}
	if m.DisplayName() != "Октябрь" {
		t.Errorf("expected display name Октябрь, got %s", m.DisplayName())
	}
}

func TestMonthFromNumber(t *testing.T) {
	m, err := MonthFromNumber(2)
	if err != nil {
		t.Fatalf("MonthFromNumber failed: %v", err)
	}
	if m != February || m.Name() != "февраль" {
		t.Errorf("unexpected month: %v (%s)", m, m.Name())
	}

	if _, err := MonthFromNumber(13); err == nil {
		t.Error("expected error for month number 13")
	}
	if _, err := MonthFromNumber(0); err == nil {
		t.Error("expected error for month number 0")
	}
}

func TestMonthJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(October)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"Октябрь"` {
		t.Errorf("expected capitalized name, got %s", data)
	}

	var m Month
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m != October {
		t.Errorf("round trip produced %v, want October", m)
	}
}

func TestParseExportFormat(t *testing.T) {
	for _, f := range ExportFormats() {
		got, err := ParseExportFormat(string(f))
		if err != nil {
			t.Errorf("ParseExportFormat(%q) returned error: %v", f, err)
		}
		if got != f {
			t.Errorf("ParseExportFormat(%q) = %v", f, got)
		}
	}
}

func TestParseExportFormat_Unsupported(t *testing.T) {
	_, err := ParseExportFormat("pdf")
	if err == nil {
		t.Fatal("expected error for pdf")
	}

	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnsupportedFormatError, got %T", err)
	}
	want := []string{"json", "excel", "csv", "markdown", "html"}
	if len(ufe.Supported) != len(want) {
		t.Fatalf("supported list = %v, want %v", ufe.Supported, want)
	}
	for i, s := range want {
		if ufe.Supported[i] != s {
			t.Errorf("supported[%d] = %s, want %s", i, ufe.Supported[i], s)
		}
	}
}

func TestExportFormatExtension(t *testing.T) {
	cases := map[ExportFormat]string{
		FormatJSON:     "json",
		FormatExcel:    "xlsx",
		FormatCSV:      "csv",
		FormatMarkdown: "md",
		FormatHTML:     "html",
	}
	for f, ext := range cases {
		if f.Extension() != ext {
			t.Errorf("%v.Extension() = %s, want %s", f, f.Extension(), ext)
		}
	}
}
