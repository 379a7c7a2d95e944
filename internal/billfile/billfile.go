// Package billfile reads bills from YAML (or JSON, which is valid YAML) files
// for the command-line tool.
//
//	title: Friday dinner
//	currency: EUR
//	mode: itemized
//	tax: 1.00
//	tip: 2.00
//	payer: alice
//	people:
//	  - Bob                    # id defaults to the name
//	  - {id: alice, name: Alice}
//	items:
//	  - name: Pizza
//	    price: 12.50
//	    assigned_to: [alice, Bob]
//
// Amounts are read from the raw scalar text, so 12.50 is exact.
package billfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/money"
)

// Amount is a money value decoded from a YAML scalar.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", value.Line)
	}
	d, err := money.ParseAmount(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	a.Decimal = d
	return nil
}

// Person accepts either a bare name or an {id, name} mapping.
type Person struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func (p *Person) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		return nil
	}
	type plain Person
	return value.Decode((*plain)(p))
}

type Item struct {
	Name       string   `yaml:"name"`
	Price      Amount   `yaml:"price"`
	AssignedTo []string `yaml:"assigned_to"`
}

// File is the on-disk layout of a bill.
type File struct {
	Title    string   `yaml:"title"`
	Currency string   `yaml:"currency"`
	Mode     string   `yaml:"mode"`
	Tax      Amount   `yaml:"tax"`
	Tip      Amount   `yaml:"tip"`
	Payer    string   `yaml:"payer"`
	People   []Person `yaml:"people"`
	Items    []Item   `yaml:"items"`
}

var ErrDuplicatePerson = errors.New("duplicate person")

// Load decodes a bill file and converts it to a validated bill.
func Load(r io.Reader) (*models.Bill, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("bill file is empty")
		}
		return nil, fmt.Errorf("failed to decode bill file: %w", err)
	}
	return f.Bill()
}

// LoadFile is Load for a path.
func LoadFile(path string) (*models.Bill, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(fh)
}

// Bill converts f into a bill. People IDs default to their names, and item
// IDs are positional.
func (f *File) Bill() (*models.Bill, error) {
	mode, err := models.ParseSplitMode(f.Mode)
	if err != nil {
		return nil, err
	}
	currency := models.DefaultCurrency
	if f.Currency != "" {
		c, ok := models.LookupCurrency(f.Currency)
		if !ok {
			return nil, fmt.Errorf("unknown currency %q", f.Currency)
		}
		currency = c
	}

	bill := models.NewBill(strings.TrimSpace(f.Title), currency)
	bill.SplitMode = mode
	bill.Tax = f.Tax.Decimal
	bill.Tip = f.Tip.Decimal
	bill.PayerID = f.Payer

	seen := make(map[string]bool, len(f.People))
	for i, p := range f.People {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("person %d: %w", i+1, models.ErrEmptyName)
		}
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = name
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePerson, id)
		}
		seen[id] = true
		bill.People = append(bill.People, models.Person{ID: id, Name: name})
	}

	for i, it := range f.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: %w", i+1, models.ErrEmptyName)
		}
		bill.Items = append(bill.Items, models.BillItem{
			ID:         fmt.Sprintf("item-%d", i+1),
			Name:       name,
			Price:      it.Price.Decimal,
			AssignedTo: it.AssignedTo,
		})
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}
	return bill, nil
}

// Warnings lists problems that do not stop a split but change its result:
// assignees that are not on the bill, and items nobody carries.
func Warnings(bill *models.Bill) []string {
	var warnings []string
	for _, item := range bill.Items {
		for _, id := range item.AssignedTo {
			if bill.PersonIndex(id) < 0 {
				warnings = append(warnings, fmt.Sprintf("item %q is assigned to unknown person %q", item.Name, id))
			}
		}
	}
	if bill.SplitMode == models.SplitItemized && len(bill.People) > 1 {
		for _, item := range bill.UnassignedItems() {
			warnings = append(warnings, fmt.Sprintf("item %q is not assigned to anyone and is left out of the split", item.Name))
		}
	}
	return warnings
}
