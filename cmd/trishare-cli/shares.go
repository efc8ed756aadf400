package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/sharing"
)

// ShareExport is the JSON file layout of one share.
type ShareExport struct {
	ID   uint8  `json:"id"`
	Data string `json:"data"`
	Hash string `json:"hash"`
}

func exportShare(s *sharing.Share) ShareExport {
	h := s.Hash()
	return ShareExport{
		ID:   s.ID(),
		Data: hex.EncodeToString(s.Data()),
		Hash: hex.EncodeToString(h[:]),
	}
}

func (e ShareExport) share() (*sharing.Share, error) {
	data, err := hex.DecodeString(e.Data)
	if err != nil {
		return nil, trishare.InvalidInput("share %d: bad data encoding: %v", e.ID, err)
	}
	raw, err := hex.DecodeString(e.Hash)
	if err != nil || len(raw) != trishare.HashSize {
		return nil, trishare.InvalidInput("share %d: bad hash encoding", e.ID)
	}
	var hash [trishare.HashSize]byte
	copy(hash[:], raw)
	return sharing.FromParts(data, e.ID, hash)
}

func shareFileName(id uint8) string {
	return fmt.Sprintf("share-%d.json", id)
}

func writeShares(dir string, shares []*sharing.Share) ([]string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, trishare.IOError(errors.Wrapf(err, "create %s", dir))
	}
	paths := make([]string, 0, len(shares))
	for _, s := range shares {
		b, err := json.MarshalIndent(exportShare(s), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode share")
		}
		path := filepath.Join(dir, shareFileName(s.ID()))
		if err := os.WriteFile(path, b, 0o600); err != nil {
			return nil, trishare.IOError(errors.Wrapf(err, "write %s", path))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func readShares(paths []string) ([]*sharing.Share, error) {
	shares := make([]*sharing.Share, 0, len(paths))
	seen := make(map[uint8]bool, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, trishare.IOError(errors.Wrapf(err, "read %s", path))
		}
		var e ShareExport
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, trishare.InvalidInput("%s: %v", path, err)
		}
		s, err := e.share()
		if err != nil {
			return nil, err
		}
		if seen[s.ID()] {
			return nil, trishare.InvalidInput("duplicate share id %d in %s", s.ID(), path)
		}
		seen[s.ID()] = true
		shares = append(shares, s)
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].ID() < shares[j].ID() })
	return shares, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, trishare.IOError(errors.Wrap(err, "read input"))
	}
	return data, nil
}

func newSplitCmd(a *app) *cobra.Command {
	var input, outDir string
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into three share files",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			s := sharing.New(a.cfg.Sharing, sharing.WithLogger(a.log), sharing.WithMetrics(a.metrics))
			shares, err := s.Split(secret)
			if err != nil {
				return err
			}
			paths, err := writeShares(outDir, shares)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "secret file (default stdin)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for share files")
	return cmd
}

func newReconstructCmd(a *app) *cobra.Command {
	var paths []string
	var output string
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Recover a secret from three share files",
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := readShares(paths)
			if err != nil {
				return err
			}
			s := sharing.New(a.cfg.Sharing, sharing.WithLogger(a.log), sharing.WithMetrics(a.metrics))
			secret, err := s.Reconstruct(shares)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(secret)
				return trishare.IOError(err)
			}
			if err := os.WriteFile(output, secret, 0o600); err != nil {
				return trishare.IOError(errors.Wrapf(err, "write %s", output))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&paths, "share", "s", nil, "share file (repeat three times)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("share")
	return cmd
}
