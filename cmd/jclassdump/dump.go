package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-jclass/jclass/classfile"
	jlog "github.com/go-jclass/jclass/internal/log"
	"github.com/spf13/cobra"
)

func prettyPrint(buff []byte) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, buff, "", "\t"); err != nil {
		log.Println("JSON encode error: ", err)
		return string(buff)
	}
	return prettyJSON.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOptions() *classfile.Options {
	level := jlog.LevelError
	if verbose {
		level = jlog.LevelDebug
	}
	logger := jlog.NewFilter(jlog.NewStdLogger(os.Stderr), jlog.FilterLevel(level))
	return &classfile.Options{
		PermissiveAttributes: permissive,
		Logger:               logger,
	}
}

func dumpOne(filename string) {
	log.Printf("processing %s", filename)

	cf, err := classfile.Open(filename, dumpOptions())
	if err != nil {
		log.Printf("error parsing %s: %s", filename, err)
		return
	}

	if wantAll || wantPool {
		pool, _ := json.Marshal(cf.ConstantPool)
		fmt.Println(prettyPrint(pool))
	}
	if wantAll || wantFields {
		fields, _ := json.Marshal(cf.Fields)
		fmt.Println(prettyPrint(fields))
	}
	if wantAll || wantMethods {
		methods, _ := json.Marshal(cf.Methods)
		fmt.Println(prettyPrint(methods))
	}
	if wantAll || wantAttrs {
		attrs, _ := json.Marshal(cf.Attributes)
		fmt.Println(prettyPrint(attrs))
	}
	if !wantAll && !wantPool && !wantFields && !wantMethods && !wantAttrs {
		whole, _ := json.Marshal(cf)
		fmt.Println(prettyPrint(whole))
	}
}

func runDump(cmd *cobra.Command, args []string) {
	path := args[0]

	if !isDirectory(path) {
		dumpOne(path)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(p) == ".class" {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpOne(f)
	}
}
