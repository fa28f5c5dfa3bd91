// Package fuzztests houses Go fuzz harnesses for the availc pipeline
// (source -> lexer -> parser -> availability check) and for the small
// string parsers the attribute arguments rely on. The harnesses only look
// for panics, hangs and broken span invariants.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
