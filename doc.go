/*
Package minidom turns markup text into a small node tree and style sheet text
into a flat rule list.

Both pipelines scan first and assemble second. The markup Tokenizer emits
Text, TagOpen, Attr, TagOpenEnd and TagClose tokens; ParseMarkup feeds them
into a Document whose nodes live in one arena and refer to each other by
NodeID. The StyleTokenizer alternates between selector text and declaration
blocks; ParseStylesheet splits those into Rules.

Neither parser reports errors. Close tags ascend one level whatever their
name, missing close tags leave elements open, attributes without '=' and
declarations without ':' get empty values. Recoveries are logged at debug
level when a logger is supplied with WithLogger.

Printer renders either result as indented diagnostic lines. WebClient is an
optional loader that fetches remote text, decodes it to UTF-8 and hands it to
the parsers.
*/
package minidom
