// Package domain models accelerograph station reports and the flat records
// they are converted into.
//
// # Report Format
//
// Reports are plain-text files written by strong-motion networks. They carry
// no schema; blocks are introduced by a heading line and fields are written
// as "LABEL : value" pairs, followed by a whitespace-separated table of
// acceleration samples:
//
//	ESTACION SISMICA
//	  NOMBRE DE LA ESTACION   : PARQUE DE LA RESERVA
//	  CODIGO DE LA ESTACION   : PRQ
//	  LATITUD                 : -12.0699
//	  LONGITUD                : -77.0339
//	DATOS DEL SISMO
//	  FECHA LOCAL             : 28/11/2021
//	  HORA LOCAL              : 05:52:12
//	  LATITUD                 : -4.44
//	  ...
//	DATOS DEL REGISTRO
//	  NUMERO DE MUESTRAS      : 3
//	  UNIDADES                : cm/s2
//	  PGA                     : 1.23 2.45 3.01
//	        Z         N         E
//	     0.012    -0.034     0.005
//	     ...
//
// Section headings are matched case-insensitively and with or without
// Spanish accents:
//
//	"ESTACION SISMICA"          station block
//	"SISMO" (without ESTACION)  earthquake block
//	"REGISTRO"                  recording block
//
// A heading line counts as the first line of its block. The LATITUD and
// LONGITUD labels appear in both the station and earthquake blocks; a
// coordinate is attributed by checking which heading opened the block.
//
// # Sample Table
//
// The table starts at a "Z N E" column heading or, inside the recording
// block, at the first line made of exactly three numeric tokens. Once the
// table has started every remaining non-blank line is a sample candidate;
// lines with fewer than three tokens are dropped and tokens past the third
// are ignored. Sample values are kept verbatim.
//
// # Records
//
// Each sample becomes one [Record] carrying the merged station, earthquake
// and recording [Metadata]. Every record of a report shares the same
// metadata. Fields whose label is missing or whose value does not match are
// absent rather than empty.
package domain
