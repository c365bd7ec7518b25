package ice

import (
	"fmt"
	"reflect"
)

type Key reflect.Type

type Provider interface{}

// Extractor is anything that can fill dest (a pointer) with a value it knows how to build.
type Extractor interface {
	Extract(dest interface{}) error
}

// MagicBag binds Providers to Keys which an evaluation can use
type MagicBag struct {
	bindings map[Key]Provider
}

func (b *MagicBag) Bindings() map[Key]Provider {
	return b.bindings
}

// Module can install many things at once.
// It could be just []Provider, but this lets Module code look a little nicer,
type Module interface {
	Install(b *MagicBag)
}

// ModuleFunc adapts a plain function to a Module.
type ModuleFunc func(b *MagicBag)

func (f ModuleFunc) Install(b *MagicBag) {
	f(b)
}

func NewMagicBag() *MagicBag {
	return &MagicBag{
		bindings: make(map[Key]Provider),
	}
}

// InstallModule installs m, turning a panic from a bad Provider into an error.
func (b *MagicBag) InstallModule(m Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Error installing module %T: %v", m, r)
		}
	}()
	m.Install(b)
	return nil
}

type Value reflect.Value

func (b *MagicBag) checkResult(t reflect.Type) reflect.Type {
	if t.NumOut() == 1 {
		return t.Out(0)
	}
	if t.NumOut() == 2 {
		errType := reflect.TypeOf(new(error)).Elem()
		if !t.Out(1).Implements(errType) {
			throw("f returns two results so the second must implement error; was %v %v", t, errType)
		}
		return t.Out(0)
	}
	throw("f must return either exactly 1 value or 2 values with the second an error; was %v with %v results", t, t.NumOut())
	return nil
}

// Put binds f to the type it returns. A later Put for the same type wins.
func (b *MagicBag) Put(f interface{}) {
	v := reflect.ValueOf(f)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Errorf("f must be a func; was %v", t))
	}
	if t.IsVariadic() {
		panic(fmt.Errorf("f must not be variadic; was %v", t))
	}
	created := b.checkResult(t)
	b.bindings[created] = f
}

func (b *MagicBag) PutMany(fs ...interface{}) {
	for _, f := range fs {
		b.Put(f)
	}
}

// Has reports whether the bag binds the type dest points to.
func (b *MagicBag) Has(dest interface{}) bool {
	t := reflect.TypeOf(dest)
	if t == nil || t.Kind() != reflect.Ptr {
		return false
	}
	_, ok := b.bindings[t.Elem()]
	return ok
}
