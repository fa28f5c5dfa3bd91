package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectDecl       Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynExpectColon      Code = 2006
	SynUnclosedParen    Code = 2007
	SynUnclosedBrace    Code = 2008
	SynUnknownAttribute Code = 2009
	SynAttributeRenamed Code = 2010

	// грамматика @available
	SynAvailInfo               Code = 2100
	SynAvailExpectLParen       Code = 2101
	SynAvailExpectPlatform     Code = 2102
	SynAvailExpectComma        Code = 2103
	SynAvailExpectOption       Code = 2104
	SynAvailExpectColon        Code = 2105
	SynAvailExpectString       Code = 2106
	SynAvailExpectVersion      Code = 2107
	SynAvailExpectRParen       Code = 2108
	SynAvailUnknownPlatform    Code = 2109
	SynAvailFuturePlatforms    Code = 2110
	SynAvailExpectPlatformName Code = 2111
	SynAvailInvalidRename      Code = 2112

	// Семантические
	SemaInfo                    Code = 3000
	SemaUnavailableUse          Code = 3001
	SemaDeprecatedUse           Code = 3002
	SemaObsoletedUse            Code = 3003
	SemaNotYetIntroduced        Code = 3004
	SemaConflictingAvailability Code = 3005
	SemaDuplicateSymbol         Code = 3006
	SemaTableInvariant          Code = 3007

	// IO
	IOLoadFileError Code = 4001
	IOImportError   Code = 4002

	// Проект
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexBadEscape:                "Bad escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectDecl:               "Expected declaration",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynExpectColon:              "Expected colon",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnknownAttribute:         "Unknown attribute",
		SynAttributeRenamed:         "Attribute has been renamed",
		SynAvailInfo:                "Availability attribute information",
		SynAvailExpectLParen:        "Expected '(' in availability attribute",
		SynAvailExpectPlatform:      "Expected platform in availability attribute",
		SynAvailExpectComma:         "Expected ',' in availability attribute",
		SynAvailExpectOption:        "Expected availability option",
		SynAvailExpectColon:         "Expected ':' after availability option",
		SynAvailExpectString:        "Expected string literal in availability attribute",
		SynAvailExpectVersion:       "Expected version number in availability attribute",
		SynAvailExpectRParen:        "Expected ')' in availability attribute",
		SynAvailUnknownPlatform:     "Unknown platform in availability attribute",
		SynAvailFuturePlatforms:     "Availability list must handle future platforms",
		SynAvailExpectPlatformName:  "Expected platform name",
		SynAvailInvalidRename:       "Invalid 'renamed' argument",
		SemaInfo:                    "Semantic information",
		SemaUnavailableUse:          "Use of unavailable declaration",
		SemaDeprecatedUse:           "Use of deprecated declaration",
		SemaObsoletedUse:            "Use of obsoleted declaration",
		SemaNotYetIntroduced:        "Use of declaration newer than deployment target",
		SemaConflictingAvailability: "Conflicting availability",
		SemaDuplicateSymbol:         "Duplicate symbol",
		SemaTableInvariant:          "Symbol table invariant violation",
		IOLoadFileError:             "I/O load file error",
		IOImportError:               "Availability import error",
		ProjInfo:                    "Project information",
		ProjInvalidConfig:           "Invalid project configuration",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
