package common

import (
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 generates a cluster-safe int64 identifier. The node id can be
// overridden with the AUTIMAPRO_NODE_ID environment variable when running
// multiple instances against the same database.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		nodeID := cast.ToInt64(os.Getenv("AUTIMAPRO_NODE_ID"))
		if nodeID <= 0 || nodeID > 1023 {
			nodeID = 1
		}
		var err error
		snowflakeNode, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}
