package langdetect

// weightedToken is one piece of keyword evidence for a language.
// Identifier tokens are matched against whole words, anything containing
// punctuation is matched as a raw substring.
type weightedToken struct {
	Token  string
	Weight float64
}

// linguistToID maps enry/linguist language names to the supported case ids.
var linguistToID = map[string]string{
	"Assembly":          "asm",
	"Batchfile":         "bat",
	"C":                 "c",
	"C#":                "cs",
	"C++":               "cpp",
	"Clojure":           "clj",
	"CMake":             "cmake",
	"COBOL":             "cbl",
	"CoffeeScript":      "coffee",
	"CSS":               "css",
	"CSV":               "csv",
	"Dart":              "dart",
	"DM":                "dm",
	"Dockerfile":        "dockerfile",
	"Elixir":            "ex",
	"Erlang":            "erl",
	"Fortran":           "f90",
	"Go":                "go",
	"Groovy":            "groovy",
	"Haskell":           "hs",
	"HTML":              "html",
	"INI":               "ini",
	"Java":              "java",
	"JavaScript":        "js",
	"JSON":              "json",
	"Julia":             "jl",
	"Kotlin":            "kt",
	"Common Lisp":       "lisp",
	"Lua":               "lua",
	"Makefile":          "makefile",
	"Markdown":          "md",
	"MATLAB":            "matlab",
	"Objective-C":       "mm",
	"OCaml":             "ml",
	"Pascal":            "pas",
	"Perl":              "pm",
	"PHP":               "php",
	"PowerShell":        "ps1",
	"Prolog":            "prolog",
	"Python":            "py",
	"R":                 "r",
	"Ruby":              "rb",
	"Rust":              "rs",
	"Scala":             "scala",
	"Shell":             "sh",
	"SQL":               "sql",
	"Swift":             "swift",
	"TeX":               "tex",
	"TOML":              "toml",
	"TypeScript":        "ts",
	"Verilog":           "v",
	"Visual Basic .NET": "vba",
	"XML":               "xml",
	"YAML":              "yaml",
}

// languageKeywords holds the evidence tables for the keyword scorer.
// Weights favor tokens that rarely appear outside their language.
var languageKeywords = map[string][]weightedToken{
	"asm": {{"mov", 3}, {"eax", 4}, {"jmp", 3}, {"push", 1}, {"section", 1}, {".text", 3}},
	"bat": {{"@echo", 4}, {"setlocal", 3}, {"errorlevel", 3}, {"goto", 1}, {"%~", 3}},
	"c": {{"#include", 3}, {"printf", 2}, {"malloc", 3}, {"sizeof", 2}, {"->", 1},
		{"void", 1}, {"struct", 1}, {"char", 1}, {"int", 1}},
	"cs": {{"namespace", 2}, {"using", 1}, {"Console", 3}, {"async", 1}, {"var", 1},
		{"public", 1}, {"string", 1}, {"WriteLine", 4}},
	"cpp": {{"#include", 2}, {"std", 3}, {"cout", 4}, {"nullptr", 3}, {"template", 2},
		{"::", 1}, {"vector", 1}},
	"clj":   {{"defn", 4}, {"defmacro", 4}, {"println", 1}, {"(let", 3}, {"keyword", 1}},
	"cmake": {{"cmake_minimum_required", 5}, {"add_executable", 4}, {"target_link_libraries", 4}, {"project", 1}},
	"cbl":   {{"IDENTIFICATION", 4}, {"DIVISION", 4}, {"PERFORM", 3}, {"PIC", 3}},
	"coffee": {{"->", 1}, {"=>", 1}, {"unless", 2}, {"console", 1}, {"require", 1},
		{"@", 0.5}},
	"css": {{"color", 2}, {"margin", 3}, {"padding", 3}, {"px", 2}, {"font", 1},
		{"display", 2}, {"!important", 4}},
	"csv":  {{",", 0.2}},
	"dart": {{"widget", 3}, {"Widget", 3}, {"BuildContext", 5}, {"override", 1}, {"final", 1}},
	"dm":   {{"datum", 4}, {"proc", 2}, {"verb", 2}, {"usr", 3}},
	"dockerfile": {{"FROM", 3}, {"RUN", 2}, {"COPY", 2}, {"WORKDIR", 4}, {"ENTRYPOINT", 4},
		{"EXPOSE", 3}},
	"ex": {{"defmodule", 5}, {"defp", 4}, {"|>", 3}, {"iex", 3}},
	"erl": {{"-module", 5}, {"-export", 4}, {"receive", 2}, {"spawn", 2}},
	"f90": {{"subroutine", 3}, {"endif", 2}, {"INTEGER", 2}, {"IMPLICIT", 4}},
	"go": {{"func", 3}, {"package", 2}, {"fmt", 3}, {"goroutine", 4}, {"chan", 3},
		{"defer", 3}, {"err", 2}, {":=", 3}, {"nil", 1}, {"interface", 1}},
	"groovy": {{"def", 2}, {"println", 2}, {"closure", 2}, {"gradle", 3}},
	"hs": {{"module", 1}, {"where", 3}, {"instance", 2}, {"deriving", 4}, {"::", 2},
		{"<-", 1}},
	"html": {{"<html", 5}, {"<div", 4}, {"<body", 4}, {"</", 2}, {"href", 2},
		{"<span", 3}, {"<!DOCTYPE", 5}},
	"ini":  {{"[", 0.5}, {"=", 0.3}},
	"java": {{"public", 2}, {"static", 2}, {"void", 1}, {"System", 3}, {"extends", 2},
		{"import", 1}, {"new", 1}, {"String", 2}},
	"js": {{"function", 2}, {"const", 2}, {"let", 2}, {"=>", 2}, {"console", 3},
		{"require", 2}, {"undefined", 3}, {"var", 1}},
	"json": {{"{\"", 2}, {"\":", 2}, {"null", 1}, {"\",", 1}},
	"jl":   {{"function", 1}, {"end", 1}, {"println", 1}, {"::", 1}, {"struct", 1}, {"Base", 3}},
	"kt": {{"fun", 4}, {"val", 3}, {"var", 1}, {"companion", 4}, {"suspend", 4},
		{"data", 1}},
	"lisp":     {{"defun", 5}, {"setq", 4}, {"lambda", 2}, {"(cond", 3}},
	"lua":      {{"local", 3}, {"function", 1}, {"end", 2}, {"nil", 1}, {"then", 2}, {"elseif", 3}},
	"makefile": {{".PHONY", 5}, {"$(", 2}, {"all:", 2}, {"CFLAGS", 4}},
	"md":       {{"##", 2}, {"```", 3}, {"](", 2}, {"**", 1}},
	"matlab":   {{"end", 1}, {"disp", 3}, {"zeros", 3}, {"plot", 2}, {"fprintf", 2}},
	"mm":       {{"@interface", 5}, {"@implementation", 5}, {"NSString", 5}, {"alloc", 3}},
	"ml":       {{"let", 2}, {"match", 2}, {"rec", 3}, {"|>", 1}, {"in", 1}},
	"pas":      {{"begin", 3}, {"end;", 3}, {"procedure", 3}, {"writeln", 4}},
	"pm":       {{"my", 3}, {"sub", 2}, {"use", 1}, {"$_", 4}, {"=~", 3}},
	"php":      {{"<?php", 6}, {"echo", 2}, {"$this", 3}, {"->", 1}, {"function", 1}},
	"ps1": {{"param", 2}, {"Write-Host", 5}, {"Get-", 3}, {"$PSScriptRoot", 5},
		{"-eq", 3}},
	"prolog": {{":-", 4}, {"?-", 4}, {"assert", 2}},
	"py": {{"def", 3}, {"import", 2}, {"self", 3}, {"elif", 4}, {"lambda", 2},
		{"None", 3}, {"print", 1}, {"__init__", 5}},
	"r":  {{"<-", 3}, {"library", 3}, {"data.frame", 5}, {"ggplot", 4}, {"NULL", 1}},
	"rb": {{"def", 1}, {"end", 2}, {"puts", 4}, {"require", 1}, {"nil", 1},
		{"attr_accessor", 5}, {"do", 1}},
	"rs": {{"fn", 4}, {"let", 1}, {"mut", 4}, {"impl", 4}, {"pub", 2},
		{"match", 1}, {"unwrap", 4}, {"println!", 5}},
	"scala": {{"val", 2}, {"def", 1}, {"object", 2}, {"trait", 4}, {"case", 1},
		{"implicit", 4}},
	"sh": {{"#!/bin/sh", 5}, {"#!/bin/bash", 5}, {"echo", 2}, {"fi", 3}, {"esac", 4},
		{"then", 1}, {"$?", 3}},
	"sql": {{"SELECT", 4}, {"FROM", 2}, {"WHERE", 2}, {"INSERT", 3}, {"JOIN", 3},
		{"GROUP", 1}, {"TABLE", 2}},
	"swift": {{"func", 1}, {"let", 1}, {"var", 1}, {"guard", 4}, {"UIKit", 5},
		{"protocol", 2}, {"??", 2}},
	"tex":  {{"\\begin", 5}, {"\\end", 4}, {"\\section", 4}, {"\\usepackage", 5}},
	"toml": {{"[[", 2}, {"[", 0.5}, {"=", 0.3}, {"\"\"\"", 1}},
	"ts": {{"interface", 2}, {"type", 1}, {"const", 1}, {"=>", 1}, {"readonly", 3},
		{"enum", 2}, {": string", 3}, {": number", 3}},
	"v":    {{"module", 1}, {"always", 3}, {"posedge", 5}, {"wire", 3}, {"reg", 2}},
	"vba":  {{"Dim", 4}, {"Sub", 3}, {"End Sub", 4}, {"MsgBox", 5}},
	"xml":  {{"<?xml", 6}, {"</", 2}, {"xmlns", 4}, {"/>", 1}},
	"yaml": {{": ", 0.5}, {"- ", 0.5}, {"---", 2}},
}
