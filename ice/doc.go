/*
ice is a lightweight Dependency Injection Framework

ice's central metaphor is a "Magic Bag".

It's a Bag because you put things in and then take things out.

Imagine a bag where you put in building materials and an Ikea instruction manual,
and then you pull out a fully-formed desk. The bag did the assembly! Magic!

Our object graph is composed of Go values (the nodes) and Providers (the edges).

Lifecycle

1) Create an Empty Bag
2) Insert Provider Functions
  a) or a Module, which can insert many Provider at once
3) Extract Values
  a) once, from the Bag itself (every Extract builds a fresh graph), or
  b) many times, from a Graph, which keeps what it built

Terms

Key: what ice knows how to create. Currently a Go type.

Provider: a function that creates a foo. It may either return foo or (foo, error).

Magic Bag: binds Keys to Providers.

Graph: a Magic Bag plus the values it has constructed. A Graph may have a parent
Extractor it asks for Keys its Bag does not bind. Graphs are what containers hold.

Extract: Use the bindings to create and wire together complex structs

Module: utility to install multiple Providers at once

Notes

ice uses reflection heavily.

(MagicBag in ice is the equivalent of Guice's Injector or
Dagger 1's ObjectGraph)
*/
package ice
