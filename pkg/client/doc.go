// Package client implements a non-blocking, polling-style byte-stream client
// on top of a push-style transport.Transport.
//
// The application drives everything from one loop:
//
//	c, _ := client.New(client.Config{Transport: transport.TCPFactory(tcpCfg, logger)})
//	_ = c.Connect("10.0.0.5", 4242)
//	for {
//	    c.Sync()
//	    if c.Connected() && c.Available() > 0 {
//	        n, _ := c.Read(buf)
//	        handle(buf[:n])
//	    }
//	    ...
//	}
//
// Connect, Write, Read, Available, Connected, Stop and Sync never block.
// Transport events are only processed from inside Sync, so the client holds
// no locks and is not safe for concurrent use.
//
// # Outbound Accounting
//
// Written bytes are copied into a queue. A flush hands queued bytes to the
// transport up to its current send window; handed-off bytes stay queued until
// the peer acknowledges them. Each queued chunk therefore tracks two
// positions: how much has been handed off and how much has been acknowledged.
// An acknowledgment can only cover bytes that were handed off.
//
// # Teardown
//
// Every teardown path (Stop, Close, a fatal transport status, a transport
// error event, the peer closing) detaches the event handler and deregisters
// it from the transport before the transport handle is released.
package client
