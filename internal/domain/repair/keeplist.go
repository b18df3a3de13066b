package repair

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type KeepListMode string

const (
	// KeepListLenient treats an unparsable list as "keep nothing".
	KeepListLenient KeepListMode = "lenient"
	// KeepListStrict rejects an unparsable list.
	KeepListStrict KeepListMode = "strict"
)

func ParseKeepListMode(s string) KeepListMode {
	if KeepListMode(strings.ToLower(s)) == KeepListStrict {
		return KeepListStrict
	}
	return KeepListLenient
}

// KeepSet is the set of existing images a client wants to retain during an
// update. The zero value means no keep-list was sent: nothing is removed.
type KeepSet struct {
	present    bool
	ids        map[uint]struct{}
	keepLegacy bool
}

// NoReconcile is the KeepSet for requests without a keep-list.
func NoReconcile() KeepSet {
	return KeepSet{}
}

// KeepOnly builds a present KeepSet from explicit ids.
func KeepOnly(keepLegacy bool, ids ...uint) KeepSet {
	k := KeepSet{present: true, ids: make(map[uint]struct{}, len(ids)), keepLegacy: keepLegacy}
	for _, id := range ids {
		k.ids[id] = struct{}{}
	}
	return k
}

// Applies reports whether reconciliation should run at all.
func (k KeepSet) Applies() bool {
	return k.present
}

// Keeps reports whether the image with id survives reconciliation.
func (k KeepSet) Keeps(id uint) bool {
	if !k.present {
		return true
	}
	_, ok := k.ids[id]
	return ok
}

// KeepsLegacy reports whether the legacy single-image column survives.
func (k KeepSet) KeepsLegacy() bool {
	return !k.present || k.keepLegacy
}

func (k KeepSet) Len() int {
	return len(k.ids)
}

type keepEntry struct {
	Type string          `json:"type"`
	ID   json.RawMessage `json:"id"`
}

// ParseKeepList decodes a client keep-list. Accepted entries are bare ids
// (number or numeric string) and objects of the form {"type":"new","id":N}
// or {"type":"legacy"}. An empty string is an empty list.
func ParseKeepList(raw string, mode KeepListMode) (KeepSet, error) {
	keep := KeepOnly(false)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return keep, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return rejectOrEmpty(mode, fmt.Errorf("%w: %v", ErrInvalidKeepList, err))
	}

	for _, entry := range entries {
		if err := keep.addEntry(entry); err != nil {
			if mode == KeepListStrict {
				return KeepSet{}, err
			}
		}
	}
	return keep, nil
}

func rejectOrEmpty(mode KeepListMode, err error) (KeepSet, error) {
	if mode == KeepListStrict {
		return KeepSet{}, err
	}
	return KeepOnly(false), nil
}

func (k *KeepSet) addEntry(entry json.RawMessage) error {
	if id, ok := parseID(entry); ok {
		k.ids[id] = struct{}{}
		return nil
	}

	var obj keepEntry
	if err := json.Unmarshal(entry, &obj); err != nil {
		return fmt.Errorf("%w: unsupported entry %s", ErrInvalidKeepList, string(entry))
	}

	switch obj.Type {
	case "legacy":
		k.keepLegacy = true
		return nil
	case "new", "":
		if id, ok := parseID(obj.ID); ok {
			k.ids[id] = struct{}{}
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported entry %s", ErrInvalidKeepList, string(entry))
}

func parseID(raw json.RawMessage) (uint, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n = json.Number(strings.TrimSpace(s))
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// Unkept returns the images k does not retain, in input order. It returns
// nil when k does not apply.
func Unkept(images []*Image, k KeepSet) []*Image {
	if !k.Applies() {
		return nil
	}
	var out []*Image
	for _, img := range images {
		if !k.Keeps(img.ID()) {
			out = append(out, img)
		}
	}
	return out
}
