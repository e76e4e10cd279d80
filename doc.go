// Package studyhub is the client SDK for the studyhub study-materials
// platform. It owns the client-side authentication lifecycle and the
// typed API surface a presentation layer builds on: materials browsing
// and search, material upload, and the admin user/material operations.
//
// All business logic lives in the backend; the SDK's own responsibility
// is session state. One session.Manager per process tracks who is logged
// in, persists the session across restarts, and feeds role checks to
// route guards and conditional UI. Every authenticated API call carries
// the session's bearer token, and a 401 from any endpoint clears the
// session locally the same way a failed restore does.
//
// # Usage
//
//	var cfg studyhub.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	app, err := studyhub.New(cfg, studyhub.WithLogger(log))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close()
//
//	app.Initialize(ctx)
//
//	if _, err := app.Session.Login(ctx, email, password); err != nil {
//	    // show inline on the form
//	}
//
//	materials, err := app.API.ListMaterials(ctx, apiclient.MaterialFilter{
//	    Keyword: "algorithms",
//	})
package studyhub
