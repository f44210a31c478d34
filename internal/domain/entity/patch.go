package entity

import "encoding/json"

// Optional distinguishes "not provided" from a provided zero value.
// A JSON null or a missing key leaves it unset; "" is a provided value.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a provided Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was provided.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if provided, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalJSON implements json.Marshaler; an unset value encodes as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// FoundationPatch carries the mutable fields of a Foundation, each independently optional.
type FoundationPatch struct {
	Name                  Optional[string] `json:"name"`
	TaxID                 Optional[string] `json:"taxId"`
	Email                 Optional[string] `json:"email"`
	Phone                 Optional[string] `json:"phone"`
	AffiliatedInstitution Optional[string] `json:"affiliatedInstitution"`
}

// Apply returns a copy of f with every provided field overridden.
// ID and timestamps are never touched.
func (p FoundationPatch) Apply(f Foundation) Foundation {
	f.Name = p.Name.OrElse(f.Name)
	f.TaxID = p.TaxID.OrElse(f.TaxID)
	f.Email = p.Email.OrElse(f.Email)
	f.Phone = p.Phone.OrElse(f.Phone)
	f.AffiliatedInstitution = p.AffiliatedInstitution.OrElse(f.AffiliatedInstitution)
	return f
}

// NewFoundation builds an unpersisted Foundation from a patch; absent fields are empty.
func NewFoundation(p FoundationPatch) Foundation {
	return p.Apply(Foundation{})
}
