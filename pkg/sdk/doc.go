// Package labdex provides a Go client for the labdex sample search API and the
// client-side table pipeline that sits on top of it.
//
// # API client
//
//	client, _ := labdex.New("http://localhost:8080", labdex.WithAPIKey(key))
//	orgs, _ := client.Organisations(ctx)
//	doc, _ := client.Samples(ctx, orgs[0].ID, &labdex.Query{Page: 1, PatientName: "chan"})
//
// # Table pipeline
//
// Enrich flattens a response into Patients, Tokenize and Filter apply the free-text
// search ("chan;negative" requires both tokens), Paginate slices 15 rows per page and
// Columns picks the visible columns for the organisation.
//
// Browser wires these together with a debounced search box:
//
//	b := labdex.NewBrowser(client, labdex.WithOnChange(render))
//	_ = b.Load(ctx)
//	b.SetSearch("chan;negative")
//	b.NextPage()
package labdex
