package doc

import "strings"

// DocumentID is one identifier attached to a record. Type is an open string
// tag ("doi", "pmc", "pmid", ...); unknown types are carried through as-is.
type DocumentID struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// idTypePriority is the canonical ordering of well-known identifier types.
// Types outside this list sort after it in encounter order.
var idTypePriority = []string{"doi", "pmc", "pubmed", "pmid", "pii", "publisher-id"}

// TypePublisherID is excluded from synthetic ids: publisher-assigned ids are
// not stable across re-releases of the same logical document.
const TypePublisherID = "publisher-id"

func idTypeRank(idType string) (int, bool) {
	for i, t := range idTypePriority {
		if t == idType {
			return i, true
		}
	}
	return len(idTypePriority), false
}

// CanonicalIDs orders and deduplicates raw identifiers: well-known types in
// priority order, remaining types in first-encounter order, at most one entry
// per type. When a type repeats, the value seen last in document order wins.
func CanonicalIDs(ids []DocumentID) []DocumentID {
	if len(ids) == 0 {
		return nil
	}

	valueByType := make(map[string]string, len(ids))
	var extraTypes []string
	for _, id := range ids {
		if id.ID == "" || id.Type == "" {
			continue
		}
		if _, seen := valueByType[id.Type]; !seen {
			if _, known := idTypeRank(id.Type); !known {
				extraTypes = append(extraTypes, id.Type)
			}
		}
		valueByType[id.Type] = id.ID
	}

	result := make([]DocumentID, 0, len(valueByType))
	for _, idType := range idTypePriority {
		if v, ok := valueByType[idType]; ok {
			result = append(result, DocumentID{ID: v, Type: idType})
		}
	}
	for _, idType := range extraTypes {
		result = append(result, DocumentID{ID: valueByType[idType], Type: idType})
	}
	return result
}

// SyntheticID derives the natural key of a document from its canonical ids,
// excluding publisher-assigned identifiers. Two parses of the same logical
// document must produce the same synthetic id regardless of when they run.
func SyntheticID(canonical []DocumentID) string {
	parts := make([]string, 0, len(canonical))
	for _, id := range canonical {
		if id.Type == TypePublisherID {
			continue
		}
		parts = append(parts, "type="+id.Type+";id="+id.ID)
	}
	return strings.Join(parts, "&")
}
