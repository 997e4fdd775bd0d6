/*
Package matcher selects the edge a conversation follows for a piece of user input.

Selection runs in two passes over the outgoing edges of the current node:

  - Exact: count the keywords of each edge that appear verbatim among the input
    tokens. The edge with the most hits wins; ties go to the smallest aggregate
    edit distance, then to the edge listed first.
  - Fuzzy: only when no keyword hit at all. A keyword matches when its
    Levenshtein distance to some input token is within a threshold proportional
    to the keyword length. The edge with the smallest such distance wins, with
    the same tie-breaks.

If neither pass finds an edge, the result is domain.MatchNone. The matcher is
deterministic and never returns an error.
*/
package matcher
