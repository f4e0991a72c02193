/*
Package domain contains the core models of the megaverse builder.

It defines the grid a map is made of, the commands compiled from it and the
outcomes recorded while dispatching them. This package is kept pure and free
of external dependencies like I/O or transport, following Hexagonal
Architecture principles.

# Key Entities

  - Cell: One square of the map (empty, Polyanet, coloured Soloon, directed Cometh).
  - Grid: The rectangular matrix of cells loaded from configuration.
  - Command: A single create/delete instruction for one remote entity.
  - Outcome: The recorded result of attempting one command.
*/
package domain
