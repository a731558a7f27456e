// Package providerfinder provides an embedded Go client for the
// provider finder directory: natural-language search criteria
// extraction, directory queries, and demographic ranking, backed by
// Redis with the search module.
//
// The client talks to the database directly and calls the extraction
// provider itself, so it needs the same credentials as the server:
//
//	client, _ := providerfinder.New(ctx,
//	    providerfinder.WithRedis("localhost:6379", ""),
//	    providerfinder.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer client.Close()
//
//	criteria, _ := client.Search().Parse(ctx, "cardiologist in Austin Texas")
//	page, _ := client.Search().Providers(ctx, criteria, 1, 10)
//	ranked, _ := client.Rank().Providers(ctx, "I am a 45 year old woman", ids)
//
// Extraction is optional: a client built without WithOpenAI or
// WithExtractor can still run direct criteria searches, but Parse and
// Rank return an error.
package providerfinder
