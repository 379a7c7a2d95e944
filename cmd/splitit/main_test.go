package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bill = `
title: Lunch
payer: Alice
people: [Alice, Bob, Charlie]
items:
  - {name: Dinner, price: 10.00}
`

func writeBill(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bill.yaml")
	if err := os.WriteFile(path, []byte(bill), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := newApp(&out).Run(append([]string{"splitit"}, args...)); err != nil {
		t.Fatalf("splitit %v failed: %v", args, err)
	}
	return out.String()
}

func TestSplitText(t *testing.T) {
	out := run(t, "split", "--file", writeBill(t))

	for _, want := range []string{
		"• Alice: $3.34",
		"• Bob: $3.33",
		"💰 Total: $10.00",
		"Settle up:\n• Bob → Alice: $3.33\n• Charlie → Alice: $3.33",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSplitJSON(t *testing.T) {
	out := run(t, "split", "--file", writeBill(t), "--format", "json")

	var got struct {
		Mode   string `json:"mode"`
		Total  string `json:"total"`
		Shares []struct {
			Name   string `json:"name"`
			Amount string `json:"amount"`
		} `json:"shares"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if got.Mode != "even" || got.Total != "10" || len(got.Shares) != 3 || got.Shares[0].Amount != "3.34" {
		t.Errorf("unexpected JSON summary: %+v", got)
	}
}

func TestSplitPDFToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	run(t, "split", "--file", writeBill(t), "--format", "pdf", "--out", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected PDF file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected PDF header")
	}
}

func TestSplitUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"splitit", "split", "--file", writeBill(t), "--format", "xml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"format", "--amount", "12.5"}, "$12.50\n"},
		{[]string{"format", "--amount", "3", "--currency", "EUR"}, "€3.00\n"},
		{[]string{"format", "--amount", "0.005", "--currency", "TL"}, "₺0.01\n"},
		{[]string{"format", "--amount=-1.5"}, "$-1.50\n"},
		{[]string{"format", "--amount", "-0.005", "--currency", "EUR"}, "€-0.01\n"},
	}
	for _, tt := range tests {
		if got := run(t, tt.args...); got != tt.want {
			t.Errorf("splitit %v = %q, want %q", tt.args, got, tt.want)
		}
	}
}
