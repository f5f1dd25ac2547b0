package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	permissive  bool
	wantPool    bool
	wantFields  bool
	wantMethods bool
	wantAttrs   bool
	wantAll     bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "jclassdump",
		Short: "A JVM class file parser",
		Long:  "Decodes .class files into their structural representation: header, constant pool, fields, methods, and attributes",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps a class file",
		Long:  "Dumps the decoded structure of a class file, or every class file found under a directory",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDump,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&permissive, "permissive", "", false, "accept attributes with unrecognized names instead of failing")
	dumpCmd.Flags().BoolVarP(&wantPool, "pool", "", false, "dump the constant pool")
	dumpCmd.Flags().BoolVarP(&wantFields, "fields", "", false, "dump fields")
	dumpCmd.Flags().BoolVarP(&wantMethods, "methods", "", false, "dump methods")
	dumpCmd.Flags().BoolVarP(&wantAttrs, "attributes", "", false, "dump class-level attributes")
	dumpCmd.Flags().BoolVarP(&wantAll, "all", "", false, "dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
