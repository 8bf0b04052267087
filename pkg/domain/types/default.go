package types

const (
	// DefaultMetainfoPath is the metainfo location relative to the release tools directory
	DefaultMetainfoPath = "../../so.libdb.dissent.metainfo.xml"

	// DefaultRepositoryURL is the base URL used to build release tag links
	DefaultRepositoryURL = "https://github.com/diamondburned/dissent"
)
