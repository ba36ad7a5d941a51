/*
Package dsl provides a fluent API for composing programs in Go code, as an
alternative to building the command tree through the editing operations.

	program := dsl.New().
		Forward(2).
		Repeat(4, func(b *dsl.Builder) {
			b.Right(90).Forward(1)
		}).
		Build()

It is mainly a convenience for tests and embedded hosts; interactive hosts
edit through the controller instead.
*/
package dsl
