package casegraph

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CaseTransaction is one case block extracted from a submitted instance.
type CaseTransaction struct {
	CaseId  string
	Create  *CreateBlock
	Update  map[string]string
	Indexes []IndexSpec
	// HasIndexBlock distinguishes "no index element" from "index element that
	// clears all indexes"; the latter replaces the case's outgoing edges.
	HasIndexBlock bool
	Close         bool
}

type CreateBlock struct {
	CaseType string
	CaseName string
	OwnerId  string
}

type IndexSpec struct {
	Identifier   string
	TargetId     string
	Relationship string
}

// ParseTransactions walks the instance payload and collects every case block.
// Non-case content is skipped; the instance schema is owned by the form engine.
func ParseTransactions(instanceXml string) ([]*CaseTransaction, error) {
	decoder := xml.NewDecoder(strings.NewReader(instanceXml))
	var transactions []*CaseTransaction

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("malformed instance payload: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "case" {
			continue
		}

		tx, err := parseCaseElement(decoder, start)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func parseCaseElement(decoder *xml.Decoder, start xml.StartElement) (*CaseTransaction, error) {
	tx := &CaseTransaction{Update: make(map[string]string)}
	for _, attr := range start.Attr {
		if attr.Name.Local == "case_id" {
			tx.CaseId = attr.Value
		}
	}
	if tx.CaseId == "" {
		return nil, fmt.Errorf("case block without case_id")
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("unterminated case block for %s: %w", tx.CaseId, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "create":
				create, err := parseCreateBlock(decoder)
				if err != nil {
					return nil, err
				}
				tx.Create = create
			case "update":
				if err := parseFields(decoder, "update", tx.Update); err != nil {
					return nil, err
				}
			case "index":
				tx.HasIndexBlock = true
				indexes, err := parseIndexBlock(decoder)
				if err != nil {
					return nil, err
				}
				tx.Indexes = indexes
			case "close":
				tx.Close = true
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			default:
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "case" {
				return tx, nil
			}
		}
	}
}

func parseCreateBlock(decoder *xml.Decoder) (*CreateBlock, error) {
	fields := make(map[string]string)
	if err := parseFields(decoder, "create", fields); err != nil {
		return nil, err
	}
	return &CreateBlock{
		CaseType: fields["case_type"],
		CaseName: fields["case_name"],
		OwnerId:  fields["owner_id"],
	}, nil
}

// parseFields reads <field>value</field> children until the named wrapper
// element closes.
func parseFields(decoder *xml.Decoder, wrapper string, into map[string]string) error {
	var currentField string
	var value strings.Builder

	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("unterminated %s block: %w", wrapper, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			currentField = t.Name.Local
			value.Reset()
		case xml.CharData:
			if currentField != "" {
				value.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == wrapper {
				return nil
			}
			if currentField == t.Name.Local {
				into[currentField] = strings.TrimSpace(value.String())
				currentField = ""
			}
		}
	}
}

func parseIndexBlock(decoder *xml.Decoder) ([]IndexSpec, error) {
	var indexes []IndexSpec
	var current *IndexSpec
	var value strings.Builder

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("unterminated index block: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			current = &IndexSpec{Identifier: t.Name.Local, Relationship: "child"}
			for _, attr := range t.Attr {
				if attr.Name.Local == "relationship" && attr.Value != "" {
					current.Relationship = attr.Value
				}
			}
			value.Reset()
		case xml.CharData:
			if current != nil {
				value.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "index" {
				return indexes, nil
			}
			if current != nil && current.Identifier == t.Name.Local {
				current.TargetId = strings.TrimSpace(value.String())
				// An empty target clears the index rather than creating one.
				if current.TargetId != "" {
					indexes = append(indexes, *current)
				}
				current = nil
			}
		}
	}
}
