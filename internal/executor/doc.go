/*
Package executor sends the requests built from the Request pane.

Execute performs one HTTP request with the active profile's settings:
timeout, InsecureSkipVerify, an http:// or socks5:// proxy and OAuth 2.0
client credentials. Transport failures are returned inside
types.RequestResult.Error so they can be shown in the Response pane.

Dispatcher runs Execute on a background goroutine and reports completions on
a channel. Each submission gets a UUID. A new submission cancels the one in
flight, and the canceled request never reports a completion:

	d := executor.NewDispatcher(nil)
	defer d.Close()

	id, _ := d.Submit(req, profile)
	c := <-d.Results()
	if c.ID == id {
		// show c.Result
	}
*/
package executor
