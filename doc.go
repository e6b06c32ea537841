/*

Package memsession provides a memcached backed session store for web session middleware,
and an easy-to-use, cookie based HTTP session manager on top of it.

Package documentation can be found at:

https://pkg.go.dev/github.com/icza/memsession

Overview

There are 4 key players in the package:

- Session is a serializable session value: arbitrary attributes plus metadata of the session cookie.

- Store is the session store contract (Get, Set, Destroy, Length, Clear) expected by session middleware.
MemcacheStore implements it on top of a key-value Client.

- Client is the key-value client a MemcacheStore talks to. NewMemcacheClient() returns one backed by
github.com/bradfitz/gomemcache, NewRedisClient() one backed by Redis, and NewInMemClient() one that keeps
everything in memory.

- Manager is a session manager interface which is responsible to acquire a Session from an (incoming) HTTP request,
and to add a Session to an HTTP response to let the client know about the session.

Store

Creating a store talking to memcached:

    store := memsession.NewMemcacheStoreOptions(&memsession.MemcacheStoreOptions{
        Hosts:  []string{"10.0.0.1:11211", "10.0.0.2:11211"},
        Prefix: "sess:",
    })

Sessions are stored under the prefix and the session id concatenated, as JSON text:

    sess := memsession.NewSession()
    sess.SetAttr("user", "alice")
    sess.SetMaxAge(5 * time.Second)
    err := store.Set("abc123", sess) // Key: "sess:abc123", expiration: 5 seconds

The expiration of a stored session is the max age of its cookie, truncated to seconds,
or one day (DefaultTTL) if the session has no cookie max age.

Get returns (nil, nil) if there is no such session. If the client fails, the error is returned
together with an empty session.

Each operation also has a callback based variant (GetFunc, SetFunc, DestroyFunc, LengthFunc, ClearFunc)
which returns immediately and reports the outcome to an optional callback.

Options may also be decoded from a loosely typed map (OptionsFromMap) or loaded from a YAML file (LoadOptions):

    hosts: ["10.0.0.1:11211"]
    prefix: "sess:"
    timeout: 250ms

Usage of the Manager

To get the current session associated with the http.Request:

    sess := memsession.Get(r)
    if sess == nil {
        // No session (yet)
    } else {
        // We have a session, use it
    }

To create a new session (e.g. on a successful login) and add it to an http.ResponseWriter (to let the client know about the session):

    sess := memsession.NewSession()
    sess.SetAttr("UserName", userName)
    err := memsession.Add(sess, w)

Changes made to a session have to be saved by calling Add again.

To remove a session (e.g. on logout):

    err := memsession.Remove(sess, w)

The Global manager keeps sessions in memory. To use memcached:

    memsession.Global = memsession.NewCookieManager(memsession.NewMemcacheStore())

*/
package memsession
