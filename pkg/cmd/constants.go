package cmd

const (
	RootCmdName  = "carfinder"
	RootCmdShort = "Browse a car catalog and keep a wishlist"
	RootCmdLong  = `carfinder filters, sorts and pages a car catalog and keeps a wishlist of
favourite cars.

The catalog comes from the built-in dataset, catalog files (YAML, JSON or
Parquet), another carfinder API or PostgreSQL. The wishlist and display
preferences persist in memory, a JSON file, PostgreSQL or a NATS key-value
bucket.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Start the HTTP API"
	ServeCmdLong  = `Starts the carfinder HTTP API.

The listen address comes from --address, server.address in the config file,
CARFINDER_SERVER_ADDRESS or SERVER_ADDRESS, in that order.`

	SearchCmdName  = "search"
	SearchCmdShort = "List one page of the filtered catalog"

	ShowCmdName  = "show <id>"
	ShowCmdShort = "Show the details of a car"

	WishlistCmdName  = "wishlist"
	WishlistCmdShort = "Inspect and edit the wishlist"

	BrowseCmdName  = "browse"
	BrowseCmdShort = "Search the catalog interactively"
	BrowseCmdLong  = `Reads one search per line from standard input and prints the results.

A line is either free text, matched against car names and brands, or query
parameters such as "brand=Toyota&sort=price_asc&page=2". A new line
supersedes a search that is still running; its results are never printed.
Type "quit" to leave.`

	CatalogCmdName  = "catalog"
	CatalogCmdShort = "Move catalog data between files and PostgreSQL"
)
