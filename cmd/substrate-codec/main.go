// Command substrate-codec decodes SCALE-encoded extrinsics and storage
// entries against a given metadata blob, printing the resulting
// SubstrateValue tree.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synnergy-network/substrate-codec/dispatcher"
	"github.com/synnergy-network/substrate-codec/legacy"
	"github.com/synnergy-network/substrate-codec/metadata"
)

var log = logrus.StandardLogger()

func main() {
	root := &cobra.Command{Use: "substrate-codec"}
	root.AddCommand(extrinsicsCmd())
	root.AddCommand(storageCmd())
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("substrate-codec: command failed")
		os.Exit(1)
	}
}

func loadMetadata(path string) (*metadata.Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	return metadata.Parse(raw)
}

func loadLegacyDictionary(typesPath, chainWidePath, extrinsicsPath string) (*legacy.Dictionary, error) {
	if typesPath == "" && chainWidePath == "" && extrinsicsPath == "" {
		return legacy.NewEmptyResolver(), nil
	}
	read := func(path string) ([]byte, error) {
		if path == "" {
			return nil, nil
		}
		return os.ReadFile(path)
	}
	types, err := read(typesPath)
	if err != nil {
		return nil, fmt.Errorf("reading legacy types document: %w", err)
	}
	chainWide, err := read(chainWidePath)
	if err != nil {
		return nil, fmt.Errorf("reading legacy chain-wide document: %w", err)
	}
	extrinsics, err := read(extrinsicsPath)
	if err != nil {
		return nil, fmt.Errorf("reading legacy extrinsics document: %w", err)
	}
	return legacy.NewDictionary(types, chainWide, extrinsics)
}

func decodeHexArg(arg string) ([]byte, error) {
	return hex.DecodeString(stripHexPrefix(arg))
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func buildDispatcher(cmd *cobra.Command) (*dispatcher.Dispatcher, uint32, error) {
	metadataPath, _ := cmd.Flags().GetString("metadata")
	chain, _ := cmd.Flags().GetString("chain")
	specVersion, _ := cmd.Flags().GetUint32("spec")
	typesPath, _ := cmd.Flags().GetString("legacy-types")
	chainWidePath, _ := cmd.Flags().GetString("legacy-chain-wide")
	extrinsicsPath, _ := cmd.Flags().GetString("legacy-extrinsics")

	meta, err := loadMetadata(metadataPath)
	if err != nil {
		return nil, 0, err
	}
	dict, err := loadLegacyDictionary(typesPath, chainWidePath, extrinsicsPath)
	if err != nil {
		return nil, 0, err
	}

	d := dispatcher.New()
	d.RegisterVersion(specVersion, chain, meta, dict)
	log.WithFields(logrus.Fields{
		"chain":        chain,
		"spec_version": specVersion,
		"regime":       meta.Regime.String(),
	}).Debug("substrate-codec: registered metadata")
	return d, specVersion, nil
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("metadata", "", "path to a raw metadata blob (required)")
	cmd.Flags().String("chain", "", "chain name, used for legacy type resolution")
	cmd.Flags().Uint32("spec", 0, "spec version to register the metadata under")
	cmd.Flags().String("legacy-types", "", "path to a legacy types.json document")
	cmd.Flags().String("legacy-chain-wide", "", "path to a legacy chain-wide types document")
	cmd.Flags().String("legacy-extrinsics", "", "path to a legacy extrinsics types document")
	cmd.MarkFlagRequired("metadata")
}

func extrinsicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extrinsics [hex-bytes]",
		Short: "decode a Vec<UncheckedExtrinsic> blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, specVersion, err := buildDispatcher(cmd)
			if err != nil {
				return err
			}
			raw, err := decodeHexArg(args[0])
			if err != nil {
				return fmt.Errorf("decoding extrinsics hex argument: %w", err)
			}
			result, decodeErr := d.DecodeExtrinsics(specVersion, raw)
			if result != nil {
				for i, ext := range result.Extrinsics {
					fmt.Printf("[%d] %#v\n", i, ext)
				}
			}
			if decodeErr != nil {
				return fmt.Errorf("decoding extrinsics (decoded %d of the batch): %w", len(result.Extrinsics), decodeErr)
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func storageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage [key-hex] [value-hex]",
		Short: "decode a storage key/value pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, specVersion, err := buildDispatcher(cmd)
			if err != nil {
				return err
			}
			key, err := decodeHexArg(args[0])
			if err != nil {
				return fmt.Errorf("decoding key hex argument: %w", err)
			}
			value, err := decodeHexArg(args[1])
			if err != nil {
				return fmt.Errorf("decoding value hex argument: %w", err)
			}
			result, err := d.DecodeStorage(specVersion, key, &value)
			if err != nil {
				return fmt.Errorf("decoding storage entry: %w", err)
			}
			fmt.Printf("%s.%s: %#v\n", result.Record.Pallet.Name, result.Record.Entry.Name, result.Record.Value)
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}
