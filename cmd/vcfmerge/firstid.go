package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/singerma/vcfmerge/internal/vcf"
)

var variantTypes = map[string]vcf.VariantType{
	"snv":       vcf.TypeSNV,
	"mnv":       vcf.TypeMNV,
	"insertion": vcf.TypeInsertion,
	"deletion":  vcf.TypeDeletion,
}

func newFirstIDCmd() *cobra.Command {
	var variantType string

	cmd := &cobra.Command{
		Use:   "first-id <vcf>",
		Short: "Print the ID of the first variant of a given type",
		Long: `Scan a VCF file and print the identifier of the first variant whose
type matches. Prints nothing when no variant matches; absence is a normal
outcome, not an error.`,
		Example: `  vcfmerge first-id --type snv input.vcf`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := variantTypes[variantType]
			if !ok {
				return fmt.Errorf("unknown variant type %q (snv, mnv, insertion, deletion)", variantType)
			}
			return runFirstID(args[0], t)
		},
	}

	cmd.Flags().StringVar(&variantType, "type", "snv", "Variant type: snv, mnv, insertion, deletion")
	return cmd
}

func runFirstID(path string, t vcf.VariantType) error {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return err
	}
	defer parser.Close()

	var variants []*vcf.Variant
	for {
		v, err := parser.Next()
		if err != nil {
			return err
		}
		if v == nil {
			break
		}
		variants = append(variants, v)
	}

	if id, ok := vcf.FirstIDOfType(variants, t); ok {
		fmt.Println(id)
	}
	return nil
}
