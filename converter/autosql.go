package converter

import "os"

// DefaultAutoSql describes the standard BED12 fields, with the reserved
// field carrying an itemRgb color. It is what bedToBigBed -as= receives
// when the caller does not supply a field description of its own.
const DefaultAutoSql = `table bedSourceSelectedFields
"Browser extensible data selected fields."
(
string	chrom;	"Chromosome or scaffold"
uint	chromStart;	"Feature start position on chromosome"
uint	chromEnd;	"Feature end position on chromosome"
string	name;	"Feature id"
uint	score;	"Score"
char[1]	strand;	"+ or -"
uint	thickStart;	"Feature start coordinate"
uint	thickEnd;	"Feature end coordinate"
uint	reserved;	"RGB custom colour scheme"
int	blockCount;	"Number of exons spanned by a feature"
int[blockCount]	blockSizes;	"Comma separated list of exons sizes"
int[blockCount]	chromStarts;	"Start positions of exons relative to chromStart"
)
`

// DefaultBedType is the -type= value matching DefaultAutoSql.
const DefaultBedType = "bed12"

// WriteAutoSql writes the default AutoSql descriptor to path.
func WriteAutoSql(path string) error {
	return os.WriteFile(path, []byte(DefaultAutoSql), 0666)
}
