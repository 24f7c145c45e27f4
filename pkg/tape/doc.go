/*
Package tape provides the unbounded one-dimensional symbol store of a Turing machine.

A Tape is addressed by signed logical positions. Any access outside the materialized
range grows the tape at that end in fixed-size chunks filled with the blank symbol, so
from the caller's point of view every position exists and holds either the blank or a
symbol written earlier. Growth never shrinks the tape and never renumbers positions.
*/
package tape
