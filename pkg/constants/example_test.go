package constants_test

import (
	"fmt"
	"path/filepath"

	"github.com/agentstation/beadsync/pkg/constants"
)

// Example_storeLayout shows where a sync run reads and writes inside a store directory.
func Example_storeLayout() {
	store := constants.DefaultStoreDir
	fmt.Println(filepath.Join(store, constants.IssuesFile))
	fmt.Println(filepath.Join(store, constants.MetadataFile))
	fmt.Printf("%o\n", constants.FilePermissions)
	// Output:
	// .beads/issues.jsonl
	// .beads/metadata.json
	// 644
}
