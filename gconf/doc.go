/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a single entity saved under the
"_c:<package name>" key. Configuration is loaded from the "conf" section of
the genesis file and validated before it is written.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client. Application must be
terminated and configured correctly.
*/
package gconf
