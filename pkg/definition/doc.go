/*
Package definition reads and writes the tagged-record format that describes a
conversation graph.

Each non-blank line is one record made of <TAG:value> pairs:

	# the root greets, then waits for "hello"
	<TYPE:NODE><ID:0>
	<TYPE:NODE><ID:1><ANSWER:Hi there><ANSWER:Hello!>
	<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:hello><KEYWORD:hi>

Tags are case-insensitive and may appear in any order. A NODE record needs an
ID; an EDGE record needs an ID, a PARENT (alias SOURCE) and a CHILD (alias
DESTINATION). ANSWER and KEYWORD may repeat and keep their order. Unknown tags
are kept but ignored by the builder. Lines starting with '#' are comments.
*/
package definition
