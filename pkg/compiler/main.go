// Package compiler provides the calc expression language front end: a
// lexer, a recursive-descent parser with error recovery, a declaration
// checker, and a code generator that lowers the checked tree to an LLVM IR
// text unit built on the calc_read and calc_write runtime primitives.
//
// Pipeline: calc source → Lex → Parse → Check → Generate → IR text
package compiler
