package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixPartView CachePrefix = "PART_VIEW_"
)

// Detail merge modes accepted by DETAILS_MERGE_MODE.
const (
	MergeModeSkipFalsy = "skip-falsy"
	MergeModeExplicit  = "explicit"
)
