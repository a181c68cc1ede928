// Package publish writes rendered comment markup to a destination.
//
// A Publisher renders pages concurrently and hands each result to a
// Store. Two stores ship with the package: DirStore writes a static
// directory tree suitable for any file server, S3Store puts objects
// into an S3 bucket for CDN-backed hosting.
//
//	store, err := publish.NewDirStore("public")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pub := publish.NewPublisher(store, engine.RenderPage,
//	    publish.WithWorkers(8),
//	)
//	n, err := pub.Publish(ctx, pages)
//
// Rendering and writing are the publisher's concern; discovering pages
// is the host's.
package publish
