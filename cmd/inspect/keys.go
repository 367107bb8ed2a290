package main

import (
	"fmt"
	"strings"
	"toni/internal"
	"toni/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

const badgerScheme = "badger://"

// newKeysCmd dumps the raw keyspace of a Badger store.
func newKeysCmd(opts *options) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Dump raw Badger keys under a prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !strings.HasPrefix(opts.dsn, badgerScheme) {
				return fmt.Errorf("keys needs a %s store", badgerScheme)
			}
			store, err := repositories.OpenBadgerStore(strings.TrimPrefix(opts.dsn, badgerScheme), opts.logger(), true)
			if err != nil {
				return err
			}
			defer store.Close()

			table := newTable(cmd.OutOrStdout(), "Key", "Kind", "Owner", "Timestamp", "Detail")
			count := 0
			err = store.DB().View(func(txn *badger.Txn) error {
				it := txn.NewIterator(badger.DefaultIteratorOptions)
				defer it.Close()
				for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
					item := it.Item()
					key := string(item.KeyCopy(nil))
					if err := item.Value(func(val []byte) error {
						row := internal.KeyMapper(key, val)
						table.Append([]string{row.Key, row.Kind, row.Owner, row.Timestamp, row.Detail})
						return nil
					}); err != nil {
						return err
					}
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), heading.Sprintf("%d keys under %q", count, prefix))
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "session:", "key prefix to scan")
	return cmd
}
