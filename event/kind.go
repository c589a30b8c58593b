package event

import "fmt"

// Kind names an event type.
type Kind uint8

const (
	SwapKind Kind = iota
	NextFrameKind
	AddKind
	ChangeKind
	DeleteKind
	AnyKind
)

var kindNames = [...]string{
	SwapKind:      "swap",
	NextFrameKind: "next-animation-frame",
	AddKind:       "add",
	ChangeKind:    "change",
	DeleteKind:    "delete",
	AnyKind:       "any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("<kind %d>", k)
}

// Kinds returns every event kind in declaration order.
func Kinds() []Kind {
	return []Kind{SwapKind, NextFrameKind, AddKind, ChangeKind, DeleteKind, AnyKind}
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}
