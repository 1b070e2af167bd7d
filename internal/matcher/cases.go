// Package matcher decides which rule applies to a piece of text by running
// its case through a cascade of detectors: builtin patterns, user regexes,
// natural-language identification, programming-language identification and
// user-trained classifiers.
package matcher

import (
	"regexp"
)

// BuiltinCase is one builtin pattern case: a case id, a display label and
// the full-match pattern that decides it.
type BuiltinCase struct {
	Value   string
	Label   string
	Pattern *regexp.Regexp
}

// builtinCases are the builtin pattern cases, keyed by case id. Built once
// at startup and never mutated.
var builtinCases = func() map[string]BuiltinCase {
	cases := []BuiltinCase{
		{
			Value: "url",
			Label: "URL",
			Pattern: regexp.MustCompile(
				`^https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)$`),
		},
		{
			Value: "email",
			Label: "Email",
			Pattern: regexp.MustCompile(
				`^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`),
		},
		{
			Value: "ipv4",
			Label: "IPv4 address",
			Pattern: regexp.MustCompile(
				`^(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`),
		},
		{
			Value: "ipv6",
			Label: "IPv6 address",
			Pattern: regexp.MustCompile(
				`^(([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,7}:|([0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,5}(:[0-9a-fA-F]{1,4}){1,2}|([0-9a-fA-F]{1,4}:){1,4}(:[0-9a-fA-F]{1,4}){1,3}|([0-9a-fA-F]{1,4}:){1,3}(:[0-9a-fA-F]{1,4}){1,4}|([0-9a-fA-F]{1,4}:){1,2}(:[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:((:[0-9a-fA-F]{1,4}){1,6})|:((:[0-9a-fA-F]{1,4}){1,7}|:)|fe80:(:[0-9a-fA-F]{0,4}){0,4}%[0-9a-zA-Z]+|::(ffff(:0{1,4})?:)?((25[0-5]|(2[0-4]|1?[0-9])?[0-9])\.){3}(25[0-5]|(2[0-4]|1?[0-9])?[0-9])|([0-9a-fA-F]{1,4}:){1,4}:((25[0-5]|(2[0-4]|1?[0-9])?[0-9])\.){3}(25[0-5]|(2[0-4]|1?[0-9])?[0-9]))$`),
		},
		{
			Value: "uuid",
			Label: "UUID",
			Pattern: regexp.MustCompile(
				`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
		},
		{
			Value: "path",
			Label: "File path",
			Pattern: regexp.MustCompile(
				`^(?:(?:/|~/|\./|\.\./)[^\s]*|[A-Za-z]:\\[^\s]*)$`),
		},
		{
			Value: "timestamp",
			Label: "Timestamp",
			Pattern: regexp.MustCompile(
				`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:[Zz]|[+-]\d{2}:?\d{2})?$`),
		},
		{
			Value:   "camel-case",
			Label:   "camelCase",
			Pattern: regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)+$`),
		},
		{
			Value:   "pascal-case",
			Label:   "PascalCase",
			Pattern: regexp.MustCompile(`^(?:[A-Z][a-z0-9]+){2,}$`),
		},
		{
			Value:   "snake-case",
			Label:   "snake_case",
			Pattern: regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)+$`),
		},
		{
			Value:   "kebab-case",
			Label:   "kebab-case",
			Pattern: regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)+$`),
		},
		{
			Value:   "constant-case",
			Label:   "CONSTANT_CASE",
			Pattern: regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`),
		},
	}

	m := make(map[string]BuiltinCase, len(cases))
	for _, c := range cases {
		m[c.Value] = c
	}
	return m
}()

// naturalCases maps supported ISO 639-3 language codes to display labels.
var naturalCases = map[string]string{
	"cmn": "Chinese",
	"eng": "English",
	"jpn": "Japanese",
	"kor": "Korean",
	"rus": "Russian",
	"fra": "French",
	"deu": "German",
	"spa": "Spanish",
	"por": "Portuguese",
	"arb": "Arabic",
}

// programCases maps supported programming-language ids to display labels.
var programCases = map[string]string{
	"asm":        "Assembly",
	"bat":        "Batchfile",
	"c":          "C",
	"cs":         "C#",
	"cpp":        "C++",
	"clj":        "Clojure",
	"cmake":      "CMake",
	"cbl":        "COBOL",
	"coffee":     "CoffeeScript",
	"css":        "CSS",
	"csv":        "CSV",
	"dart":       "Dart",
	"dm":         "DM",
	"dockerfile": "Dockerfile",
	"ex":         "Elixir",
	"erl":        "Erlang",
	"f90":        "Fortran",
	"go":         "Go",
	"groovy":     "Groovy",
	"hs":         "Haskell",
	"html":       "HTML",
	"ini":        "INI",
	"java":       "Java",
	"js":         "JavaScript",
	"json":       "JSON",
	"jl":         "Julia",
	"kt":         "Kotlin",
	"lisp":       "Lisp",
	"lua":        "Lua",
	"makefile":   "Makefile",
	"md":         "Markdown",
	"matlab":     "Matlab",
	"mm":         "Objective-C",
	"ml":         "OCaml",
	"pas":        "Pascal",
	"pm":         "Perl",
	"php":        "PHP",
	"ps1":        "PowerShell",
	"prolog":     "Prolog",
	"py":         "Python",
	"r":          "R",
	"rb":         "Ruby",
	"rs":         "Rust",
	"scala":      "Scala",
	"sh":         "Shell",
	"sql":        "SQL",
	"swift":      "Swift",
	"tex":        "TeX",
	"toml":       "TOML",
	"ts":         "TypeScript",
	"v":          "Verilog",
	"vba":        "Visual Basic",
	"xml":        "XML",
	"yaml":       "YAML",
}

// IsBuiltinCase reports whether a case id selects a builtin pattern.
func IsBuiltinCase(id string) bool {
	_, ok := builtinCases[id]
	return ok
}

// IsNaturalCase reports whether a case id is a supported natural language.
func IsNaturalCase(id string) bool {
	_, ok := naturalCases[id]
	return ok
}

// IsProgramCase reports whether a case id is a supported programming
// language.
func IsProgramCase(id string) bool {
	_, ok := programCases[id]
	return ok
}

// NaturalLanguages returns the supported natural-language codes.
func NaturalLanguages() []string {
	codes := make([]string, 0, len(naturalCases))
	for code := range naturalCases {
		codes = append(codes, code)
	}
	return codes
}

// ProgramLanguages returns the supported programming-language ids.
func ProgramLanguages() []string {
	ids := make([]string, 0, len(programCases))
	for id := range programCases {
		ids = append(ids, id)
	}
	return ids
}

// ProgramLabel returns the display label for a programming-language id.
func ProgramLabel(id string) string {
	return programCases[id]
}
