/*

Process of compilation

Program Text ->
	lex ->
Tokens ->
	parse ->
Abstract Syntax Tree (ast) ->
	codegen (back) ->
C Text ->
	cc (toolchain) ->
Binary Executable

Each stage consumes the whole output of the previous one.
The first error aborts the translation.

*/
package compiler
