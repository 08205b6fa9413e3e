package engine

// Method identifies a request method using llhttp's numbering.
type Method uint8

const (
	MethodDelete      Method = 0
	MethodGet         Method = 1
	MethodHead        Method = 2
	MethodPost        Method = 3
	MethodPut         Method = 4
	MethodConnect     Method = 5
	MethodOptions     Method = 6
	MethodTrace       Method = 7
	MethodCopy        Method = 8
	MethodLock        Method = 9
	MethodMkcol       Method = 10
	MethodMove        Method = 11
	MethodPropfind    Method = 12
	MethodProppatch   Method = 13
	MethodSearch      Method = 14
	MethodUnlock      Method = 15
	MethodBind        Method = 16
	MethodRebind      Method = 17
	MethodUnbind      Method = 18
	MethodACL         Method = 19
	MethodReport      Method = 20
	MethodMkactivity  Method = 21
	MethodCheckout    Method = 22
	MethodMerge       Method = 23
	MethodMSearch     Method = 24
	MethodNotify      Method = 25
	MethodSubscribe   Method = 26
	MethodUnsubscribe Method = 27
	MethodPatch       Method = 28
	MethodPurge       Method = 29
	MethodMkcalendar  Method = 30
	MethodLink        Method = 31
	MethodUnlink      Method = 32
	MethodSource      Method = 33
	MethodPRI         Method = 34
)

var methodNames = [...]string{
	MethodDelete:      "DELETE",
	MethodGet:         "GET",
	MethodHead:        "HEAD",
	MethodPost:        "POST",
	MethodPut:         "PUT",
	MethodConnect:     "CONNECT",
	MethodOptions:     "OPTIONS",
	MethodTrace:       "TRACE",
	MethodCopy:        "COPY",
	MethodLock:        "LOCK",
	MethodMkcol:       "MKCOL",
	MethodMove:        "MOVE",
	MethodPropfind:    "PROPFIND",
	MethodProppatch:   "PROPPATCH",
	MethodSearch:      "SEARCH",
	MethodUnlock:      "UNLOCK",
	MethodBind:        "BIND",
	MethodRebind:      "REBIND",
	MethodUnbind:      "UNBIND",
	MethodACL:         "ACL",
	MethodReport:      "REPORT",
	MethodMkactivity:  "MKACTIVITY",
	MethodCheckout:    "CHECKOUT",
	MethodMerge:       "MERGE",
	MethodMSearch:     "M-SEARCH",
	MethodNotify:      "NOTIFY",
	MethodSubscribe:   "SUBSCRIBE",
	MethodUnsubscribe: "UNSUBSCRIBE",
	MethodPatch:       "PATCH",
	MethodPurge:       "PURGE",
	MethodMkcalendar:  "MKCALENDAR",
	MethodLink:        "LINK",
	MethodUnlink:      "UNLINK",
	MethodSource:      "SOURCE",
	MethodPRI:         "PRI",
}

var methodsByName = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for i, name := range methodNames {
		m[name] = Method(i)
	}
	return m
}()

// String returns the method token, or "<unknown>" for values outside the table.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}

	return "<unknown>"
}

// LookupMethod maps a method token to its Method.
func LookupMethod(token []byte) (Method, bool) {
	m, ok := methodsByName[string(token)]
	return m, ok
}
