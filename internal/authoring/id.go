package authoring

import (
	"strconv"
	"sync/atomic"
	"time"
)

type Kind uint8

const (
	KindTemporary Kind = iota + 1
	KindPersisted
)

// ID identifies a question in the editor. The kind is carried explicitly;
// it is never inferred from the identifier's format.
type ID struct {
	kind Kind
	temp uint64
	key  string
}

var tempSeq atomic.Uint64

func init() {
	tempSeq.Store(uint64(time.Now().UnixMilli()))
}

// NewTemporaryID returns a process-unique client identifier.
func NewTemporaryID() ID {
	return ID{kind: KindTemporary, temp: tempSeq.Add(1)}
}

func Persisted(id string) ID {
	return ID{kind: KindPersisted, key: id}
}

func (id ID) Kind() Kind { return id.kind }

func (id ID) IsZero() bool { return id.kind == 0 }

func (id ID) IsTemporary() bool { return id.kind == KindTemporary }

func (id ID) IsPersisted() bool { return id.kind == KindPersisted }

// Key is the backend identifier; empty for temporary IDs.
func (id ID) Key() string { return id.key }

func (id ID) String() string {
	switch id.kind {
	case KindTemporary:
		return "tmp:" + strconv.FormatUint(id.temp, 10)
	case KindPersisted:
		return id.key
	default:
		return ""
	}
}
