/*
Package appcontext holds the containers pipeline actions are wired from.

A container is a named, fully configured ice Graph: its definitions come from a
resource (the config location) parsed against a jsonconfig.Schema, it may have a
parent container it asks for anything it does not define itself, and it owns (and
closes) the values it constructs.

There are two kinds:

 - Factory: a plain container. It can hand out values by type (Extract) but does not
   offer to wire arbitrary objects.
 - Context: a Factory that also implements Autowirer, so an object built outside the
   container can ask to have its dependencies filled in.

Wiring is explicit. An object that wants dependencies implements Wireable and extracts
each one itself; nothing is injected behind its back.
*/
package appcontext
